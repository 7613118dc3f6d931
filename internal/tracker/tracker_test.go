package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enact-eco/enact/internal/carbon"
	"github.com/enact-eco/enact/internal/storage"
	"github.com/enact-eco/enact/internal/sysmetrics"
)

type fakeProbe struct {
	cpu float64
	err error
}

func (p *fakeProbe) CPUPercent(ctx context.Context) (float64, error) {
	return p.cpu, p.err
}

func (p *fakeProbe) Snapshot(ctx context.Context) (sysmetrics.Snapshot, error) {
	if p.err != nil {
		return sysmetrics.Snapshot{}, p.err
	}
	return sysmetrics.Snapshot{CPUPercent: p.cpu, Timestamp: time.Now()}, nil
}

func newTestStore(t *testing.T) *storage.EmissionLog {
	t.Helper()
	store, err := storage.NewEmissionLog(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestDefaultClassifier(t *testing.T) {
	tests := []struct {
		name string
		cpu  float64
		want string
	}{
		{"idle machine", 3, "idle"},
		{"just below active threshold", 19.9, "idle"},
		{"moderate activity", 45, "browsing"},
		{"heavy load", 95, "code_execution"},
		{"at busy threshold", 80, "code_execution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultClassifier(sysmetrics.Snapshot{CPUPercent: tt.cpu})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTracker_SampleRecordsActivity(t *testing.T) {
	store := newTestStore(t)
	tr := New(10*time.Second, &fakeProbe{cpu: 5}, carbon.NewEstimator(), store, nil, zerolog.Nop())

	require.NoError(t, tr.Sample(context.Background()))

	records, err := store.Day(store.Today())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "idle", rec.ActivityType)
	assert.InDelta(t, 10.0, rec.DurationSeconds, 1e-9)
	// 3 W idle at the clamped 0.5 load floor over 10 s.
	assert.InDelta(t, 3*0.5*(10.0/3600)/1000, rec.EnergyKWh, 1e-12)
	assert.Greater(t, rec.CO2Grams, 0.0)
}

func TestTracker_SampleProbeFailure(t *testing.T) {
	store := newTestStore(t)
	tr := New(time.Second, &fakeProbe{err: errors.New("probe down")}, carbon.NewEstimator(), store, nil, zerolog.Nop())

	err := tr.Sample(context.Background())
	assert.Error(t, err)

	records, err := store.Day(store.Today())
	require.NoError(t, err)
	assert.Empty(t, records, "a failed sample must not write a record")
}

func TestTracker_CustomClassifier(t *testing.T) {
	store := newTestStore(t)
	classify := func(sysmetrics.Snapshot) string { return "gmail" }
	tr := New(time.Second, &fakeProbe{cpu: 50}, carbon.NewEstimator(), store, classify, zerolog.Nop())

	require.NoError(t, tr.Sample(context.Background()))

	records, err := store.Day(store.Today())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "gmail", records[0].ActivityType)
}

func TestTracker_RunStopsOnCancel(t *testing.T) {
	store := newTestStore(t)
	tr := New(5*time.Millisecond, &fakeProbe{cpu: 50}, carbon.NewEstimator(), store, nil, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	err := tr.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	records, readErr := store.Day(store.Today())
	require.NoError(t, readErr)
	assert.NotEmpty(t, records, "run should have sampled at least once before stopping")
}
