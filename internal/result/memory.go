package result

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zarifin2103/ExamSphere/internal/errs"
)

type memoryStore struct {
	mu      sync.RWMutex
	results map[string]ExamResult
	// order breaks created_at ties so "latest" stays deterministic in tests
	// that submit twice within one second.
	order map[string]int64
	seq   int64
}

// NewInMemoryStore backs tests and throwaway dev setups.
func NewInMemoryStore() Store {
	return &memoryStore{results: map[string]ExamResult{}, order: map[string]int64{}}
}

func (m *memoryStore) Submit(ctx context.Context, r ExamResult) (ExamResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = time.Now().Unix()
	if r.Answers == nil {
		r.Answers = []QuestionAnswer{}
	}
	m.seq++
	m.order[r.ID] = m.seq
	m.results[r.ID] = r
	return r, nil
}

func (m *memoryStore) Get(ctx context.Context, id string) (ExamResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[id]
	if !ok {
		return ExamResult{}, errs.NotFoundf("result %s not found", id)
	}
	return r, nil
}

func (m *memoryStore) List(ctx context.Context, opts ListOpts) ([]ExamResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []ExamResult{}
	for _, r := range m.results {
		if opts.ExamID != "" && r.ExamID != opts.ExamID {
			continue
		}
		if opts.UserID != "" && r.UserID != opts.UserID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return m.order[out[i].ID] > m.order[out[j].ID]
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []ExamResult{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memoryStore) LatestForUserExam(ctx context.Context, userID, examID string) (*ExamResult, error) {
	list, err := m.List(ctx, ListOpts{UserID: userID, ExamID: examID, Limit: 1})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}
