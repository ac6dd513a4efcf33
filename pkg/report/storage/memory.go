package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"tabular-hq/ganymede/pkg/report"
)

// MemoryStorage implements report.Storage using an in-memory map. Intended
// for tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string]*report.Record
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[string]*report.Record)}
}

// Store persists a record to memory.
func (s *MemoryStorage) Store(_ context.Context, record *report.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record
	s.records[record.ID] = &cp
	return nil
}

// Query returns records matching the query, newest first.
func (s *MemoryStorage) Query(_ context.Context, query *report.Query) ([]*report.Record, error) {
	if query == nil {
		query = &report.Query{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*report.Record
	for _, rec := range s.records {
		if !matches(rec, query) {
			continue
		}
		cp := *rec
		results = append(results, &cp)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].StartedAt.After(results[j].StartedAt)
	})

	offset := query.Offset
	if offset > len(results) {
		return nil, nil
	}
	results = results[offset:]

	limit := query.Limit
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

// Count returns the number of stored records.
func (s *MemoryStorage) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

// DeleteOlderThan removes records that started before the cutoff.
func (s *MemoryStorage) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, rec := range s.records {
		if rec.StartedAt.Before(cutoff) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStorage) Close() error { return nil }

func matches(rec *report.Record, query *report.Query) bool {
	if query == nil {
		return true
	}
	if query.Dataset != "" && rec.Dataset != query.Dataset {
		return false
	}
	if query.Outcome != "" && rec.Outcome != query.Outcome {
		return false
	}
	if !query.Since.IsZero() && rec.StartedAt.Before(query.Since) {
		return false
	}
	if !query.Until.IsZero() && rec.StartedAt.After(query.Until) {
		return false
	}
	return true
}
