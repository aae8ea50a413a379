package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/amadrinan/quiz/internal/quiz"
)

// persistedRecord is the on-disk shape: the id is positional, so only the
// question/answer pair is written.
type persistedRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// File is a record store persisted as a single JSON document.
//
// The whole document is rewritten after every mutating call. A missing
// file on open is not an error: the store initializes with the default
// seed set and saves immediately. An unreadable-but-present file, or any
// write failure, is reported to the caller and must be treated as fatal —
// the store can no longer be trusted.
type File struct {
	mu      sync.Mutex
	path    string
	records []quiz.Record
	nextID  int
}

// OpenFile loads the JSON document at path, seeding and saving a fresh
// one if the file does not exist yet.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, nextID: 1}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		for _, r := range quiz.Seed() {
			r.ID = f.nextID
			f.nextID++
			f.records = append(f.records, r)
		}
		if err := f.save(); err != nil {
			return nil, err
		}
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("read quiz file %s: %w", path, err)
	}

	var persisted []persistedRecord
	if err := json.Unmarshal(data, &persisted); err != nil {
		return nil, fmt.Errorf("parse quiz file %s: %w", path, err)
	}
	for _, p := range persisted {
		f.records = append(f.records, quiz.Record{
			ID:       f.nextID,
			Question: p.Question,
			Answer:   p.Answer,
		})
		f.nextID++
	}
	return f, nil
}

// save rewrites the whole document. Caller must hold the lock (or be the
// only reference, as in OpenFile).
func (f *File) save() error {
	persisted := make([]persistedRecord, 0, len(f.records))
	for _, r := range f.records {
		persisted = append(persisted, persistedRecord{Question: r.Question, Answer: r.Answer})
	}
	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("encode quiz file: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write quiz file %s: %w", f.path, err)
	}
	return nil
}

func (f *File) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records), nil
}

func (f *File) GetAll(ctx context.Context) ([]quiz.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]quiz.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *File) GetByID(ctx context.Context, id int) (quiz.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return quiz.Record{}, quiz.NotFoundError(id)
}

func (f *File) Create(ctx context.Context, question, answer string) (quiz.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := quiz.Record{
		ID:       f.nextID,
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
	}
	f.nextID++
	f.records = append(f.records, r)
	if err := f.save(); err != nil {
		return quiz.Record{}, err
	}
	return r, nil
}

func (f *File) Update(ctx context.Context, id int, question, answer string) (quiz.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.records {
		if r.ID == id {
			f.records[i].Question = strings.TrimSpace(question)
			f.records[i].Answer = strings.TrimSpace(answer)
			if err := f.save(); err != nil {
				return quiz.Record{}, err
			}
			return f.records[i], nil
		}
	}
	return quiz.Record{}, quiz.NotFoundError(id)
}

func (f *File) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return f.save()
		}
	}
	return quiz.NotFoundError(id)
}

func (f *File) Close() error { return nil }
