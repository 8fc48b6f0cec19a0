package service

import (
	"testing"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
)

func TestPendingManualCount(t *testing.T) {
	points := func(v float64) *float64 { return &v }

	assessment := &model.Assessment{
		Questions: []model.Question{
			{BaseModel: model.BaseModel{ID: 1}, QuestionType: model.QuestionMultipleChoice},
			{BaseModel: model.BaseModel{ID: 2}, QuestionType: model.QuestionShortAnswer},
			{BaseModel: model.BaseModel{ID: 3}, QuestionType: model.QuestionShortAnswer},
		},
	}

	sub := &model.Submission{
		Responses: []model.Response{
			{QuestionID: 1, PointsEarned: points(2)},
			{QuestionID: 2, PointsEarned: nil},
			{QuestionID: 3, PointsEarned: points(4)},
		},
	}

	if got := pendingManualCount(assessment, sub); got != 1 {
		t.Fatalf("pendingManualCount() = %d, want 1", got)
	}

	// Grading the last short answer clears the backlog.
	sub.Responses[1].PointsEarned = points(0)
	if got := pendingManualCount(assessment, sub); got != 0 {
		t.Fatalf("pendingManualCount() after grading = %d, want 0", got)
	}
}
