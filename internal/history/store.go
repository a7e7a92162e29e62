// Package history persists scan results in a local bbolt database so
// earlier runs against a target can be listed and compared.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketScans = []byte("scans")

// Record is one stored scan.
type Record struct {
	Key           string          `json:"key"`
	Target        string          `json:"target"`
	Domain        string          `json:"domain"`
	StartedAt     time.Time       `json:"started_at"`
	EndpointCount int             `json:"endpoint_count"`
	VectorCount   int             `json:"vector_count"`
	Result        json.RawMessage `json:"result"`
}

// Summary is the listing view of a Record, without the full result.
type Summary struct {
	Key           string    `json:"key"`
	Target        string    `json:"target"`
	Domain        string    `json:"domain"`
	StartedAt     time.Time `json:"started_at"`
	EndpointCount int       `json:"endpoint_count"`
	VectorCount   int       `json:"vector_count"`
}

// Store is a bbolt-backed scan archive.
type Store struct {
	db   *bolt.DB
	path string
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketScans)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Save stores one scan. The key is domain plus start time, so
// repeated scans of the same target accumulate chronologically.
func (s *Store) Save(record Record) (string, error) {
	if record.Key == "" {
		record.Key = fmt.Sprintf("%s/%s", record.Domain, record.StartedAt.UTC().Format(time.RFC3339))
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScans)
		if b == nil {
			return fmt.Errorf("bucket not found")
		}
		return b.Put([]byte(record.Key), data)
	})
	if err != nil {
		return "", err
	}
	return record.Key, nil
}

// Get loads one scan by key. Returns nil when the key is absent.
func (s *Store) Get(key string) (*Record, error) {
	var record Record
	var found bool

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScans)
		if b == nil {
			return fmt.Errorf("bucket not found")
		}

		data := b.Get([]byte(key))
		if data == nil {
			return nil
		}

		found = true
		return json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &record, nil
}

// List returns summaries of every stored scan in key order.
func (s *Store) List() ([]Summary, error) {
	summaries := make([]Summary, 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScans)
		if b == nil {
			return fmt.Errorf("bucket not found")
		}

		return b.ForEach(func(k, v []byte) error {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			summaries = append(summaries, Summary{
				Key:           record.Key,
				Target:        record.Target,
				Domain:        record.Domain,
				StartedAt:     record.StartedAt,
				EndpointCount: record.EndpointCount,
				VectorCount:   record.VectorCount,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
