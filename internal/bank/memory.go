package bank

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zarifin2103/ExamSphere/internal/errs"
)

type memoryStore struct {
	mu        sync.RWMutex
	banks     map[string]QuestionBank
	questions map[string]Question
}

// NewInMemoryStore backs tests and throwaway dev setups.
func NewInMemoryStore() Store {
	return &memoryStore{
		banks:     map[string]QuestionBank{},
		questions: map[string]Question{},
	}
}

func (m *memoryStore) CreateBank(ctx context.Context, b QuestionBank) (QuestionBank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().Unix()
	b.CreatedAt, b.UpdatedAt = now, now
	b.QuestionCount = 0
	m.banks[b.ID] = b
	return b, nil
}

func (m *memoryStore) GetBank(ctx context.Context, id string) (QuestionBank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.banks[id]
	if !ok {
		return QuestionBank{}, errs.NotFoundf("question bank %s not found", id)
	}
	return b, nil
}

func (m *memoryStore) ListBanks(ctx context.Context, opts BankListOpts) ([]QuestionBank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []QuestionBank{}
	for _, b := range m.banks {
		if opts.CreatedBy != "" && b.CreatedBy != opts.CreatedBy {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	out = paginate(out, opts.Offset, opts.Limit)
	return out, nil
}

func (m *memoryStore) UpdateBank(ctx context.Context, id string, upd BankUpdate) (QuestionBank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.banks[id]
	if !ok {
		return QuestionBank{}, errs.NotFoundf("question bank %s not found", id)
	}
	if upd.Name != nil {
		b.Name = *upd.Name
	}
	if upd.Description != nil {
		b.Description = *upd.Description
	}
	b.UpdatedAt = time.Now().Unix()
	m.banks[id] = b
	return b, nil
}

func (m *memoryStore) DeleteBank(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.banks[id]; !ok {
		return errs.NotFoundf("question bank %s not found", id)
	}
	delete(m.banks, id)
	return nil
}

func (m *memoryStore) CreateQuestion(ctx context.Context, q Question) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	now := time.Now().Unix()
	q.CreatedAt, q.UpdatedAt = now, now
	m.questions[q.ID] = q
	return q, nil
}

func (m *memoryStore) GetQuestion(ctx context.Context, id string) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[id]
	if !ok {
		return Question{}, errs.NotFoundf("question %s not found", id)
	}
	return q, nil
}

func (m *memoryStore) ListQuestions(ctx context.Context, opts QuestionListOpts) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Question{}
	for _, q := range m.questions {
		if opts.BankID != "" && q.BankID != opts.BankID {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	out = paginate(out, opts.Offset, opts.Limit)
	return out, nil
}

func (m *memoryStore) UpdateQuestion(ctx context.Context, id string, upd QuestionUpdate) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return Question{}, errs.NotFoundf("question %s not found", id)
	}
	if upd.Text != nil {
		q.Text = *upd.Text
	}
	if upd.Options != nil {
		q.Options = *upd.Options
	}
	if upd.CorrectOption != nil {
		q.CorrectOption = *upd.CorrectOption
	}
	if upd.Explanation != nil {
		q.Explanation = *upd.Explanation
	}
	if upd.Points != nil {
		q.Points = *upd.Points
	}
	q.UpdatedAt = time.Now().Unix()
	m.questions[id] = q
	return q, nil
}

func (m *memoryStore) DeleteQuestion(ctx context.Context, id string) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return Question{}, errs.NotFoundf("question %s not found", id)
	}
	delete(m.questions, id)
	return q, nil
}

func (m *memoryStore) IncrementQuestionCount(ctx context.Context, bankID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.banks[bankID]
	if !ok {
		return errs.NotFoundf("question bank %s not found", bankID)
	}
	b.QuestionCount++
	b.UpdatedAt = time.Now().Unix()
	m.banks[bankID] = b
	return nil
}

func (m *memoryStore) DecrementQuestionCount(ctx context.Context, bankID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.banks[bankID]
	if !ok {
		return errs.NotFoundf("question bank %s not found", bankID)
	}
	if b.QuestionCount > 0 {
		b.QuestionCount--
	}
	b.UpdatedAt = time.Now().Unix()
	m.banks[bankID] = b
	return nil
}

func (m *memoryStore) ReconcileCounts(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int{}
	for _, q := range m.questions {
		counts[q.BankID]++
	}
	var fixed int64
	for id, b := range m.banks {
		if actual := counts[id]; b.QuestionCount != actual {
			b.QuestionCount = actual
			m.banks[id] = b
			fixed++
		}
	}
	return fixed, nil
}

func paginate[T any](in []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(in) {
			return []T{}
		}
		in = in[offset:]
	}
	if limit > 0 && len(in) > limit {
		in = in[:limit]
	}
	return in
}
