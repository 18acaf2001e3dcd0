package examconfig_test

import (
	"testing"

	"github.com/zarifin2103/ExamSphere/internal/bank"
	"github.com/zarifin2103/ExamSphere/internal/exam"
	"github.com/zarifin2103/ExamSphere/internal/examconfig"
)

func TestBuildConfigurationViewEveryExamAppears(t *testing.T) {
	exams := []exam.Exam{
		{ID: "E1", Name: "Math"},
		{ID: "E2", Name: "Physics"},
		{ID: "E3", Name: "Chemistry"},
	}
	banks := []bank.QuestionBank{
		{ID: "QB1", Name: "Algebra"},
		{ID: "QB2", Name: "Geometry"},
	}
	configs := []examconfig.ExamConfig{
		{ExamID: "E1", Banks: []examconfig.ExamQuestionBank{
			{QuestionBankID: "QB2", ScoringRule: examconfig.ScoringRule{CorrectPoints: 2}},
			{QuestionBankID: "QB1", ScoringRule: examconfig.ScoringRule{CorrectPoints: 4, IncorrectPoints: -1}},
		}},
		{ExamID: "E3", Banks: []examconfig.ExamQuestionBank{}},
	}

	rows := examconfig.BuildConfigurationView(exams, banks, configs)

	// E1 has two associations, E2 has no config, E3 an empty one: 2+1+1 rows.
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4: %+v", len(rows), rows)
	}

	// Exam order follows the input; bank order follows the stored list.
	if rows[0].ExamID != "E1" || rows[0].QuestionBankID != "QB2" || rows[0].QuestionBankName != "Geometry" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].ExamID != "E1" || rows[1].QuestionBankID != "QB1" || rows[1].QuestionBankName != "Algebra" {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if !rows[0].IsConfigured || !rows[1].IsConfigured {
		t.Error("E1 rows must be flagged configured")
	}
	if rows[1].ScoringRule == nil || rows[1].ScoringRule.CorrectPoints != 4 {
		t.Errorf("row 1 scoring rule = %+v", rows[1].ScoringRule)
	}

	for _, i := range []int{2, 3} {
		if rows[i].IsConfigured {
			t.Errorf("row %d should be unconfigured: %+v", i, rows[i])
		}
		if rows[i].QuestionBankID != "" || rows[i].ScoringRule != nil {
			t.Errorf("row %d placeholder must carry no bank fields: %+v", i, rows[i])
		}
	}
	if rows[2].ExamID != "E2" || rows[3].ExamID != "E3" {
		t.Errorf("placeholder rows out of order: %+v, %+v", rows[2], rows[3])
	}
}

func TestBuildConfigurationViewDeletedBank(t *testing.T) {
	exams := []exam.Exam{{ID: "E1", Name: "Math"}}
	configs := []examconfig.ExamConfig{
		{ExamID: "E1", Banks: []examconfig.ExamQuestionBank{
			{QuestionBankID: "gone", ScoringRule: examconfig.ScoringRule{CorrectPoints: 1}},
		}},
	}

	rows := examconfig.BuildConfigurationView(exams, nil, configs)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	// The orphaned association still renders, with the name left blank.
	if rows[0].QuestionBankID != "gone" || rows[0].QuestionBankName != "" || !rows[0].IsConfigured {
		t.Errorf("orphan row = %+v", rows[0])
	}
}

func TestBuildConfigurationViewEmptyInputs(t *testing.T) {
	rows := examconfig.BuildConfigurationView(nil, nil, nil)
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %+v", rows)
	}
}
