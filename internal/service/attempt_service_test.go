package service

import (
	"testing"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/grading"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
)

func gradedQuestion(id uint, qType string, points float64, optionIDs ...uint) model.Question {
	q := model.Question{QuestionType: qType, Points: points}
	q.ID = id
	for i, optID := range optionIDs {
		o := model.QuestionOption{QuestionID: id, IsCorrect: i == 0}
		o.ID = optID
		q.Options = append(q.Options, o)
	}
	return q
}

func TestGradeResponses(t *testing.T) {
	questions := []model.Question{
		gradedQuestion(1, model.QuestionMultipleChoice, 4, 11, 12, 13),
		gradedQuestion(2, model.QuestionTrueFalse, 2, 21, 22),
		gradedQuestion(3, model.QuestionShortAnswer, 5),
	}
	byQuestion := map[uint]grading.Answer{
		1: {QuestionID: 1, SelectedOptionID: 11},
		2: {QuestionID: 2, SelectedOptionID: 22},
		3: {QuestionID: 3, Text: "because chlorophyll absorbs light"},
	}

	responses, pendingManual, stale := gradeResponses(questions, byQuestion)

	if len(responses) != 3 {
		t.Fatalf("gradeResponses returned %d responses, want 3", len(responses))
	}
	if pendingManual != 1 {
		t.Errorf("pendingManual = %d, want 1", pendingManual)
	}
	if len(stale) != 0 {
		t.Errorf("stale = %v, want none", stale)
	}
	if responses[0].PointsEarned == nil || *responses[0].PointsEarned != 4 {
		t.Errorf("correct answer PointsEarned = %v, want 4", responses[0].PointsEarned)
	}
	if responses[1].PointsEarned == nil || *responses[1].PointsEarned != 0 {
		t.Errorf("wrong answer PointsEarned = %v, want 0", responses[1].PointsEarned)
	}
	if responses[2].PointsEarned != nil {
		t.Errorf("short answer PointsEarned = %v, want nil until graded", responses[2].PointsEarned)
	}
}

func TestGradeResponsesReportsStaleOptions(t *testing.T) {
	questions := []model.Question{
		gradedQuestion(1, model.QuestionMultipleChoice, 4, 11, 12),
		gradedQuestion(2, model.QuestionTrueFalse, 2, 21, 22),
	}
	// Question 1's answer points at an option id the question no longer has,
	// as happens when a teacher replaces the question set mid-attempt.
	byQuestion := map[uint]grading.Answer{
		1: {QuestionID: 1, SelectedOptionID: 99},
		2: {QuestionID: 2, SelectedOptionID: 21},
	}

	responses, _, stale := gradeResponses(questions, byQuestion)

	if len(stale) != 1 {
		t.Fatalf("stale = %v, want exactly one entry", stale)
	}
	if stale[0].questionID != 1 || stale[0].optionID != 99 {
		t.Errorf("stale[0] = %+v, want questionID 1 optionID 99", stale[0])
	}

	// The stale answer grades as unanswered rather than failing the submit.
	if responses[0].IsCorrect != nil || responses[0].PointsEarned != nil {
		t.Errorf("stale answer graded as %+v, want ungraded", responses[0])
	}
	if responses[1].PointsEarned == nil || *responses[1].PointsEarned != 2 {
		t.Errorf("valid answer PointsEarned = %v, want 2", responses[1].PointsEarned)
	}
}
