// Package sysmetrics samples CPU, memory and disk utilization from the
// /proc filesystem. The estimator consumes the CPU percentage; the rest
// feeds the system-metrics API endpoint.
package sysmetrics

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultSampleInterval = 100 * time.Millisecond
	bytesPerGB            = 1024 * 1024 * 1024
)

// Snapshot is one observation of system resource usage.
type Snapshot struct {
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	MemoryUsedGB  float64   `json:"memory_used_gb"`
	MemoryTotalGB float64   `json:"memory_total_gb"`
	DiskPercent   float64   `json:"disk_percent"`
	Timestamp     time.Time `json:"timestamp"`
}

// Probe supplies system utilization readings.
type Probe interface {
	// CPUPercent returns current CPU utilization as a percentage [0, 100].
	CPUPercent(ctx context.Context) (float64, error)

	// Snapshot returns a full utilization snapshot.
	Snapshot(ctx context.Context) (Snapshot, error)
}

// ProcProbe implements Probe by reading /proc. CPU utilization is derived
// from two /proc/stat samples taken a short interval apart.
type ProcProbe struct {
	statPath    string
	meminfoPath string
	diskMount   string
	interval    time.Duration
	log         zerolog.Logger
}

// NewProcProbe creates a probe reading the standard /proc paths.
func NewProcProbe(logger zerolog.Logger) *ProcProbe {
	return &ProcProbe{
		statPath:    "/proc/stat",
		meminfoPath: "/proc/meminfo",
		diskMount:   "/",
		interval:    defaultSampleInterval,
		log:         logger.With().Str("component", "sysmetrics").Logger(),
	}
}

// cpuTimes holds the aggregate jiffy counters from the "cpu" line.
type cpuTimes struct {
	busy  uint64
	total uint64
}

// CPUPercent samples /proc/stat twice and reports the busy share of the
// elapsed jiffies. A zero elapsed delta (possible on very coarse clocks)
// reports 0 rather than dividing.
func (p *ProcProbe) CPUPercent(ctx context.Context) (float64, error) {
	first, err := p.readCPUTimes()
	if err != nil {
		return 0, err
	}

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-time.After(p.interval):
	}

	second, err := p.readCPUTimes()
	if err != nil {
		return 0, err
	}

	return cpuPercentBetween(first, second), nil
}

// Snapshot collects CPU, memory and disk utilization in one call.
func (p *ProcProbe) Snapshot(ctx context.Context) (Snapshot, error) {
	cpu, err := p.CPUPercent(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{CPUPercent: cpu, Timestamp: time.Now()}

	totalKB, availableKB, err := p.readMeminfo()
	if err != nil {
		return Snapshot{}, err
	}
	if totalKB > 0 {
		usedKB := totalKB - availableKB
		snap.MemoryPercent = float64(usedKB) / float64(totalKB) * 100
		snap.MemoryUsedGB = float64(usedKB) * 1024 / bytesPerGB
		snap.MemoryTotalGB = float64(totalKB) * 1024 / bytesPerGB
	}

	// Disk usage is best effort: not every deployment exposes the mount.
	var fs syscall.Statfs_t
	if err := syscall.Statfs(p.diskMount, &fs); err == nil && fs.Blocks > 0 {
		used := fs.Blocks - fs.Bfree
		snap.DiskPercent = float64(used) / float64(fs.Blocks) * 100
	} else if err != nil {
		p.log.Debug().Err(err).Str("mount", p.diskMount).Msg("disk usage unavailable")
	}

	return snap, nil
}

func cpuPercentBetween(first, second cpuTimes) float64 {
	if second.total <= first.total {
		return 0
	}
	totalDelta := second.total - first.total
	busyDelta := uint64(0)
	if second.busy > first.busy {
		busyDelta = second.busy - first.busy
	}
	return float64(busyDelta) / float64(totalDelta) * 100
}

func (p *ProcProbe) readCPUTimes() (cpuTimes, error) {
	f, err := os.Open(p.statPath)
	if err != nil {
		return cpuTimes{}, fmt.Errorf("open %s: %w", p.statPath, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}
		return parseCPULine(line)
	}
	if err := scanner.Err(); err != nil {
		return cpuTimes{}, err
	}
	return cpuTimes{}, fmt.Errorf("no aggregate cpu line in %s", p.statPath)
}

// parseCPULine parses the aggregate "cpu" line: user nice system idle
// iowait irq softirq steal [...]. Idle and iowait count as not busy.
func parseCPULine(line string) (cpuTimes, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return cpuTimes{}, fmt.Errorf("malformed cpu line: %q", line)
	}

	var times cpuTimes
	for i, field := range fields[1:] {
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return cpuTimes{}, fmt.Errorf("malformed cpu field %q: %w", field, err)
		}
		times.total += v
		// Field 3 is idle, field 4 is iowait (0-based after "cpu").
		if i != 3 && i != 4 {
			times.busy += v
		}
	}
	return times, nil
}

func (p *ProcProbe) readMeminfo() (totalKB, availableKB uint64, err error) {
	f, err := os.Open(p.meminfoPath)
	if err != nil {
		return 0, 0, fmt.Errorf("open %s: %w", p.meminfoPath, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			totalKB, _ = strconv.ParseUint(fields[1], 10, 64)
		case "MemAvailable:":
			availableKB, _ = strconv.ParseUint(fields[1], 10, 64)
		}
	}
	return totalKB, availableKB, scanner.Err()
}
