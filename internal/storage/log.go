// Package storage persists emission records as flat per-day JSON files.
// Each calendar day owns one file, emissions_YYYY-MM-DD.json, holding the
// full record list for that day. Files are rewritten wholesale on every
// append and flushed to disk before the append is acknowledged.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/enact-eco/enact/internal/carbon"
)

// DateLayout is the calendar-day format used in file names and queries.
const DateLayout = "2006-01-02"

var fileNamePattern = regexp.MustCompile(`^emissions_(\d{4}-\d{2}-\d{2})\.json$`)

// ErrBadDate is returned for dates not in YYYY-MM-DD form.
var ErrBadDate = errors.New("date must be YYYY-MM-DD")

// Record is one tracked activity with its computed emission footprint.
type Record struct {
	ID              string          `json:"id"`
	Timestamp       time.Time       `json:"timestamp"`
	ActivityType    string          `json:"activity_type"`
	DurationSeconds float64         `json:"duration_seconds"`
	EnergyKWh       float64         `json:"energy_kwh"`
	CO2Grams        float64         `json:"co2_grams"`
	PowerWatts      float64         `json:"power_watts"`
	CPULoadFactor   float64         `json:"cpu_load_factor"`
	Metadata        carbon.Metadata `json:"metadata"`
}

// EmissionLog reads and writes the per-day record files under a single
// directory. Appends serialize through a mutex; reads of historical days
// only touch immutable files.
type EmissionLog struct {
	mu  sync.Mutex
	dir string
	log zerolog.Logger
	now func() time.Time
}

// NewEmissionLog opens (creating if needed) the log directory.
func NewEmissionLog(dir string, logger zerolog.Logger) (*EmissionLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return &EmissionLog{
		dir: dir,
		log: logger.With().Str("component", "storage").Logger(),
		now: time.Now,
	}, nil
}

// Append adds a record to its day's file. The day is taken from the record
// timestamp (local calendar day); a zero timestamp means now. A missing ID
// is assigned. The rewritten file is fsynced and read back before the
// append is considered durable.
func (l *EmissionLog) Append(rec Record) (Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec.Timestamp.IsZero() {
		rec.Timestamp = l.now()
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	date := rec.Timestamp.Format(DateLayout)

	records, err := l.readDay(date)
	if err != nil {
		return Record{}, err
	}
	records = append(records, rec)

	if err := l.writeDay(date, records); err != nil {
		return Record{}, err
	}

	// Read-back verification: the file on disk must contain what we think
	// it does before we acknowledge the append.
	verify, err := l.readDay(date)
	if err != nil {
		return Record{}, fmt.Errorf("verify %s: %w", date, err)
	}
	if len(verify) != len(records) {
		return Record{}, fmt.Errorf("verify %s: wrote %d records, read back %d", date, len(records), len(verify))
	}

	l.log.Debug().
		Str("date", date).
		Str("activity_type", rec.ActivityType).
		Float64("co2_grams", rec.CO2Grams).
		Int("day_records", len(records)).
		Msg("record appended")

	return rec, nil
}

// Day returns all records for a calendar day. A missing file is an empty
// day, not an error.
func (l *EmissionLog) Day(date string) ([]Record, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	return l.readDay(date)
}

// Today returns the current calendar day in DateLayout form.
func (l *EmissionLog) Today() string {
	return l.now().Format(DateLayout)
}

// Dates lists every day that has a log file, in chronological order.
func (l *EmissionLog) Dates() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("list log dir: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if m := fileNamePattern.FindStringSubmatch(entry.Name()); m != nil {
			dates = append(dates, m[1])
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (l *EmissionLog) dayPath(date string) string {
	return filepath.Join(l.dir, "emissions_"+date+".json")
}

func (l *EmissionLog) readDay(date string) ([]Record, error) {
	data, err := os.ReadFile(l.dayPath(date))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", date, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		// A torn or hand-edited file must not wedge tracking forever.
		l.log.Warn().Str("date", date).Err(err).Msg("corrupt day file, treating as empty")
		return nil, nil
	}
	return records, nil
}

// writeDay rewrites a day file through a temp file plus rename, fsyncing
// both the file and the directory so the record survives a crash.
func (l *EmissionLog) writeDay(date string, records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", date, err)
	}

	path := l.dayPath(date)
	tmp, err := os.CreateTemp(l.dir, "emissions_*.tmp")
	if err != nil {
		return fmt.Errorf("temp file for %s: %w", date, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", date, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", date, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", date, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", date, err)
	}

	if dir, err := os.Open(l.dir); err == nil {
		_ = dir.Sync()
		_ = dir.Close()
	}
	return nil
}
