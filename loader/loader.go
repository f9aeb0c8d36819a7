// ABOUTME: Ingests throughput-cell-*.dat traces and optional packet counter files
// ABOUTME: Parallel file reads; unknown or garbled files are skipped with a warning

package loader

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fronthaul-tools/capacity-planner/models"
)

const (
	throughputPrefix = "throughput-cell-"
	packetsPrefix    = "packets-cell-"
	datSuffix        = ".dat"

	// ingestWorkers bounds concurrent file reads.
	ingestWorkers = 8
)

// Dataset is the fully materialized input of one analysis run.
type Dataset struct {
	Cells       map[int][]models.TrafficSample
	PacketStats map[int][]models.PacketStat
}

// LoadDirectory reads every throughput-cell-<id>.dat file in dir, plus any
// packets-cell-<id>.dat counter files. Files whose name yields no cell ID or
// whose content fails to parse are skipped with a warning, matching the
// ingestion behavior operators rely on for mixed data directories.
func LoadDirectory(ctx context.Context, dir string) (*Dataset, error) {
	throughputFiles, err := filepath.Glob(filepath.Join(dir, throughputPrefix+"*"+datSuffix))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(throughputFiles) == 0 {
		return nil, &models.DataError{Subject: dir, Reason: "no throughput-cell-*.dat files found"}
	}

	ds := &Dataset{
		Cells:       make(map[int][]models.TrafficSample),
		PacketStats: make(map[int][]models.PacketStat),
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ingestWorkers)

	for _, path := range throughputFiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cellID, ok := cellIDFromName(filepath.Base(path), throughputPrefix)
			if !ok {
				slog.Warn("Skipped file without cell ID", "file", filepath.Base(path))
				return nil
			}
			samples, err := readSamples(path)
			if err != nil {
				slog.Warn("Skipped unreadable throughput file", "file", filepath.Base(path), "error", err)
				return nil
			}
			mu.Lock()
			ds.Cells[cellID] = samples
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(ds.Cells) == 0 {
		return nil, &models.DataError{Subject: dir, Reason: "no parseable throughput files"}
	}

	// Packet counter files are optional; absence simply means the congestion
	// scorer falls back to the inferred byte-loss signal.
	packetFiles, _ := filepath.Glob(filepath.Join(dir, packetsPrefix+"*"+datSuffix))
	for _, path := range packetFiles {
		cellID, ok := cellIDFromName(filepath.Base(path), packetsPrefix)
		if !ok {
			continue
		}
		stats, err := readPacketStats(path)
		if err != nil {
			slog.Warn("Skipped unreadable packet counter file", "file", filepath.Base(path), "error", err)
			continue
		}
		ds.PacketStats[cellID] = stats
	}

	slog.Info("Dataset loaded", "dir", dir, "cells", len(ds.Cells), "packet_files", len(ds.PacketStats))
	return ds, nil
}

// cellIDFromName extracts the numeric cell ID from names like
// throughput-cell-7.dat.
func cellIDFromName(name, prefix string) (int, bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, datSuffix) {
		return 0, false
	}
	idStr := strings.TrimSuffix(strings.TrimPrefix(name, prefix), datSuffix)
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, false
	}
	return id, true
}

// readSamples parses whitespace-separated "<time> <bits>" rows.
func readSamples(path string) ([]models.TrafficSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var samples []models.TrafficSample
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 fields, got %d", line, len(fields))
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad timestamp %q", line, fields[0])
		}
		bits, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad bit count %q", line, fields[1])
		}
		samples = append(samples, models.TrafficSample{Time: t, Bits: bits})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// readPacketStats parses "<slot> <tx> <rx> <too_late_rx> <buffer_occupancy>"
// rows.
func readPacketStats(path string) ([]models.PacketStat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var stats []models.PacketStat
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 5 {
			return nil, fmt.Errorf("line %d: expected 5 fields, got %d", line, len(fields))
		}
		vals := make([]int, 5)
		for i, fld := range fields {
			v, err := strconv.Atoi(fld)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad counter %q", line, fld)
			}
			vals[i] = v
		}
		stats = append(stats, models.PacketStat{
			Slot:            vals[0],
			TxPackets:       vals[1],
			RxPackets:       vals[2],
			TooLateRx:       vals[3],
			BufferOccupancy: vals[4],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
