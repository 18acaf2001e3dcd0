package examconfig

import (
	"github.com/zarifin2103/ExamSphere/internal/bank"
	"github.com/zarifin2103/ExamSphere/internal/exam"
)

// ConfigRow is one line of the configuration overview screen: an exam paired
// with one of its linked banks, or a placeholder row when the exam has no
// links yet so every exam shows up at least once.
type ConfigRow struct {
	ExamID           string       `json:"exam_id"`
	ExamName         string       `json:"exam_name"`
	QuestionBankID   string       `json:"question_bank_id,omitempty"`
	QuestionBankName string       `json:"question_bank_name,omitempty"`
	ScoringRule      *ScoringRule `json:"scoring_rule,omitempty"`
	IsConfigured     bool         `json:"is_configured"`
}

// BuildConfigurationView is a pure projection: rows are grouped by exam in
// the order exams were supplied, and within an exam follow the config's
// stored association order. An association whose bank has since been deleted
// still produces a row, with the name left empty.
func BuildConfigurationView(exams []exam.Exam, banks []bank.QuestionBank, configs []ExamConfig) []ConfigRow {
	bankNames := make(map[string]string, len(banks))
	for _, b := range banks {
		bankNames[b.ID] = b.Name
	}
	cfgByExam := make(map[string]ExamConfig, len(configs))
	for _, c := range configs {
		cfgByExam[c.ExamID] = c
	}

	rows := []ConfigRow{}
	for _, e := range exams {
		cfg, ok := cfgByExam[e.ID]
		if !ok || len(cfg.Banks) == 0 {
			rows = append(rows, ConfigRow{
				ExamID:       e.ID,
				ExamName:     e.Name,
				IsConfigured: false,
			})
			continue
		}
		for _, assoc := range cfg.Banks {
			rule := assoc.ScoringRule
			rows = append(rows, ConfigRow{
				ExamID:           e.ID,
				ExamName:         e.Name,
				QuestionBankID:   assoc.QuestionBankID,
				QuestionBankName: bankNames[assoc.QuestionBankID],
				ScoringRule:      &rule,
				IsConfigured:     true,
			})
		}
	}
	return rows
}
