package examconfig

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zarifin2103/ExamSphere/internal/errs"
)

type memoryStore struct {
	mu     sync.Mutex
	byExam map[string]ExamConfig
}

// NewInMemoryStore backs tests and throwaway dev setups. The single mutex
// gives it the same one-document-per-exam guarantee the SQL store gets from
// its unique index.
func NewInMemoryStore() Store {
	return &memoryStore{byExam: map[string]ExamConfig{}}
}

func (m *memoryStore) GetByExam(ctx context.Context, examID string) (ExamConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.byExam[examID]
	if !ok {
		return ExamConfig{}, errs.NotFoundf("no configuration for exam %s", examID)
	}
	return cloneConfig(cfg), nil
}

func (m *memoryStore) AppendBank(ctx context.Context, examID string, entry ExamQuestionBank, actingUserID string) (ExamConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().Unix()
	cfg, ok := m.byExam[examID]
	if !ok {
		cfg = ExamConfig{
			ID:        uuid.NewString(),
			ExamID:    examID,
			Banks:     []ExamQuestionBank{entry},
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: actingUserID,
		}
		m.byExam[examID] = cfg
		return cloneConfig(cfg), nil
	}
	if containsBank(cfg.Banks, entry.QuestionBankID) {
		return ExamConfig{}, errs.Conflictf("question bank %s is already linked to exam %s", entry.QuestionBankID, examID)
	}
	cfg.Banks = append(cfg.Banks, entry)
	cfg.UpdatedAt = now
	m.byExam[examID] = cfg
	return cloneConfig(cfg), nil
}

func (m *memoryStore) RemoveBank(ctx context.Context, examID, bankID string) (ExamConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.byExam[examID]
	if !ok {
		return ExamConfig{}, errs.NotFoundf("no configuration for exam %s", examID)
	}
	kept := []ExamQuestionBank{}
	for _, b := range cfg.Banks {
		if b.QuestionBankID != bankID {
			kept = append(kept, b)
		}
	}
	cfg.Banks = kept
	cfg.UpdatedAt = time.Now().Unix()
	m.byExam[examID] = cfg
	return cloneConfig(cfg), nil
}

func (m *memoryStore) UpdateRule(ctx context.Context, examID, bankID string, rule ScoringRule) (ExamConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.byExam[examID]
	if !ok {
		return ExamConfig{}, errs.NotFoundf("no configuration for exam %s", examID)
	}
	found := false
	for i := range cfg.Banks {
		if cfg.Banks[i].QuestionBankID == bankID {
			cfg.Banks[i].ScoringRule = rule
			found = true
		}
	}
	if !found {
		return ExamConfig{}, errs.NotFoundf("question bank %s is not linked to exam %s", bankID, examID)
	}
	cfg.UpdatedAt = time.Now().Unix()
	m.byExam[examID] = cfg
	return cloneConfig(cfg), nil
}

func (m *memoryStore) ListAll(ctx context.Context) ([]ExamConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ExamConfig, 0, len(m.byExam))
	for _, cfg := range m.byExam {
		out = append(out, cloneConfig(cfg))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func cloneConfig(cfg ExamConfig) ExamConfig {
	banks := make([]ExamQuestionBank, len(cfg.Banks))
	copy(banks, cfg.Banks)
	cfg.Banks = banks
	return cfg
}
