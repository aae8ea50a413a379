package store

import (
	"context"
	"strings"
	"sync"

	"github.com/amadrinan/quiz/internal/quiz"
)

// Memory is a slice-backed record store.
//
// A mutex serializes every call so concurrent sessions observe each
// mutation atomically. IDs are assigned from a monotonic counter and are
// never reused after a delete.
type Memory struct {
	mu      sync.Mutex
	records []quiz.Record
	nextID  int
}

// NewMemory creates a memory store pre-loaded with the default seed set.
func NewMemory() *Memory {
	m := &Memory{nextID: 1}
	for _, r := range quiz.Seed() {
		r.ID = m.nextID
		m.nextID++
		m.records = append(m.records, r)
	}
	return m
}

// NewMemoryEmpty creates a memory store with no records.
func NewMemoryEmpty() *Memory {
	return &Memory{nextID: 1}
}

func (m *Memory) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

func (m *Memory) GetAll(ctx context.Context) ([]quiz.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]quiz.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *Memory) GetByID(ctx context.Context, id int) (quiz.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return quiz.Record{}, quiz.NotFoundError(id)
}

func (m *Memory) Create(ctx context.Context, question, answer string) (quiz.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := quiz.Record{
		ID:       m.nextID,
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
	}
	m.nextID++
	m.records = append(m.records, r)
	return r, nil
}

func (m *Memory) Update(ctx context.Context, id int, question, answer string) (quiz.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID == id {
			// Both fields replaced together so readers never see a
			// half-updated record.
			m.records[i].Question = strings.TrimSpace(question)
			m.records[i].Answer = strings.TrimSpace(answer)
			return m.records[i], nil
		}
	}
	return quiz.Record{}, quiz.NotFoundError(id)
}

func (m *Memory) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return quiz.NotFoundError(id)
}

func (m *Memory) Close() error { return nil }
