package examconfig

import (
	"context"

	"github.com/zarifin2103/ExamSphere/internal/bank"
	"github.com/zarifin2103/ExamSphere/internal/errs"
	"github.com/zarifin2103/ExamSphere/internal/exam"
	"github.com/zarifin2103/ExamSphere/internal/rbac"
)

// Actor is the explicit session identity every mutating operation receives.
// The HTTP layer fills it from the request context; nothing here reads
// ambient globals.
type Actor struct {
	ID   string
	Role rbac.Role
}

// Service is the configuration aggregator. It checks exam and bank existence
// against their repositories, validates scoring rules, and re-checks the
// admin role at this boundary rather than trusting the router alone.
type Service struct {
	configs Store
	exams   exam.Store
	banks   bank.Store
}

func NewService(configs Store, exams exam.Store, banks bank.Store) *Service {
	return &Service{configs: configs, exams: exams, banks: banks}
}

// GetConfigForExam returns nil when the exam has never been configured; that
// is a valid state, not an error.
func (s *Service) GetConfigForExam(ctx context.Context, examID string) (*ExamConfig, error) {
	cfg, err := s.configs.GetByExam(ctx, examID)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (s *Service) LinkQuestionBank(ctx context.Context, examID, bankID string, rule ScoringRule, actor Actor) ([]ExamQuestionBank, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.exams.Get(ctx, examID); err != nil {
		return nil, err
	}
	if _, err := s.banks.GetBank(ctx, bankID); err != nil {
		return nil, err
	}
	cfg, err := s.configs.AppendBank(ctx, examID, ExamQuestionBank{
		QuestionBankID: bankID,
		ScoringRule:    rule,
	}, actor.ID)
	if err != nil {
		return nil, err
	}
	return cfg.Banks, nil
}

func (s *Service) UnlinkQuestionBank(ctx context.Context, examID, bankID string, actor Actor) ([]ExamQuestionBank, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	cfg, err := s.configs.RemoveBank(ctx, examID, bankID)
	if err != nil {
		return nil, err
	}
	return cfg.Banks, nil
}

func (s *Service) UpdateScoringRule(ctx context.Context, examID, bankID string, rule ScoringRule, actor Actor) ([]ExamQuestionBank, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	cfg, err := s.configs.UpdateRule(ctx, examID, bankID, rule)
	if err != nil {
		return nil, err
	}
	return cfg.Banks, nil
}

// Overview loads all exams, banks and configs and projects them into display
// rows via BuildConfigurationView.
func (s *Service) Overview(ctx context.Context) ([]ConfigRow, error) {
	exams, err := s.exams.List(ctx, exam.ListOpts{})
	if err != nil {
		return nil, err
	}
	banks, err := s.banks.ListBanks(ctx, bank.BankListOpts{})
	if err != nil {
		return nil, err
	}
	configs, err := s.configs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildConfigurationView(exams, banks, configs), nil
}

func requireAdmin(actor Actor) error {
	if actor.Role != rbac.RoleAdmin {
		return errs.Forbiddenf("exam configuration requires the admin role")
	}
	return nil
}
