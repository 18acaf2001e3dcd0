package exam

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zarifin2103/ExamSphere/internal/errs"
)

type memoryStore struct {
	mu    sync.RWMutex
	exams map[string]Exam
}

// NewInMemoryStore backs tests and throwaway dev setups.
func NewInMemoryStore() Store {
	return &memoryStore{exams: map[string]Exam{}}
}

func (m *memoryStore) Create(ctx context.Context, e Exam) (Exam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().Unix()
	e.CreatedAt, e.UpdatedAt = now, now
	m.exams[e.ID] = e
	return e, nil
}

func (m *memoryStore) Get(ctx context.Context, id string) (Exam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.exams[id]
	if !ok {
		return Exam{}, errs.NotFoundf("exam %s not found", id)
	}
	return e, nil
}

func (m *memoryStore) List(ctx context.Context, opts ListOpts) ([]Exam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Exam{}
	for _, e := range m.exams {
		if opts.Institution != "" && e.Institution != opts.Institution {
			continue
		}
		if opts.Q != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(opts.Q)) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []Exam{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memoryStore) Update(ctx context.Context, id string, upd Update) (Exam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exams[id]
	if !ok {
		return Exam{}, errs.NotFoundf("exam %s not found", id)
	}
	upd.apply(&e)
	e.UpdatedAt = time.Now().Unix()
	m.exams[id] = e
	return e, nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.exams[id]; !ok {
		return errs.NotFoundf("exam %s not found", id)
	}
	delete(m.exams, id)
	return nil
}
