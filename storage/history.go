// Package storage keeps a local history of generated reports in bbolt.
package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var bucketRuns = []byte("runs")

// ReportRun records one report generation.
type ReportRun struct {
	Timestamp        time.Time `json:"timestamp"`
	OutputDir        string    `json:"output_dir"`
	Formats          []string  `json:"formats"`
	Files            []string  `json:"files"`
	TotalInventories int       `json:"total_inventories"`
	TotalRegions     int       `json:"total_regions"`
	TotalServices    int       `json:"total_services"`
	TotalResources   int       `json:"total_resources"`
}

// RunStore persists report runs in a bbolt database under dir.
type RunStore struct {
	db *bbolt.DB
}

// OpenRunStore opens (creating if needed) the run history database.
func OpenRunStore(dir string) (*RunStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	path := filepath.Join(dir, "awsinv.db")

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open run history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize run history bucket: %w", err)
	}

	return &RunStore{db: db}, nil
}

// Close closes the store.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// RecordRun appends one run to the history.
func (s *RunStore) RecordRun(run ReportRun) error {
	value, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRuns)
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		return bucket.Put(uint64ToBytes(seq), value)
	})
}

// ListRuns returns up to limit runs, newest first. A limit of zero or less
// returns everything.
func (s *RunStore) ListRuns(limit int) ([]ReportRun, error) {
	var runs []ReportRun

	err := s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(bucketRuns).Cursor()
		for k, v := cursor.Last(); k != nil; k, v = cursor.Prev() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			var run ReportRun
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("decode run %d: %w", bytesToUint64(k), err)
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}

func uint64ToBytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func bytesToUint64(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
