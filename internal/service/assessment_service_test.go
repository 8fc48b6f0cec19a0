package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

func choiceQuestion(qType string, correct ...bool) QuestionInput {
	q := QuestionInput{
		QuestionType: qType,
		Prompt:       "prompt",
		Points:       2,
	}
	for i, c := range correct {
		q.Options = append(q.Options, QuestionOptionInput{
			Text:      strings.Repeat("o", i+1),
			IsCorrect: c,
		})
	}
	return q
}

func TestValidateQuestions(t *testing.T) {
	tests := []struct {
		name      string
		questions []QuestionInput
		wantErr   string
	}{
		{
			name: "valid mix",
			questions: []QuestionInput{
				choiceQuestion(model.QuestionMultipleChoice, true, false, false),
				choiceQuestion(model.QuestionTrueFalse, true, false),
				{QuestionType: model.QuestionShortAnswer, Prompt: "explain", Points: 5},
			},
		},
		{
			name: "multiple choice with no correct option",
			questions: []QuestionInput{
				choiceQuestion(model.QuestionMultipleChoice, false, false, false),
			},
			wantErr: "exactly one option",
		},
		{
			name: "multiple choice with two correct options",
			questions: []QuestionInput{
				choiceQuestion(model.QuestionMultipleChoice, true, true, false),
			},
			wantErr: "exactly one option",
		},
		{
			name: "multiple choice with a single option",
			questions: []QuestionInput{
				choiceQuestion(model.QuestionMultipleChoice, true),
			},
			wantErr: "at least 2 options",
		},
		{
			name: "true false with three options",
			questions: []QuestionInput{
				choiceQuestion(model.QuestionTrueFalse, true, false, false),
			},
			wantErr: "exactly 2 options",
		},
		{
			name: "short answer with options",
			questions: []QuestionInput{
				{
					QuestionType: model.QuestionShortAnswer,
					Prompt:       "explain",
					Points:       5,
					Options:      []QuestionOptionInput{{Text: "nope"}},
				},
			},
			wantErr: "cannot have options",
		},
		{
			name: "error names the offending question",
			questions: []QuestionInput{
				choiceQuestion(model.QuestionMultipleChoice, true, false),
				choiceQuestion(model.QuestionTrueFalse, false, false),
			},
			wantErr: "question 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateQuestions(tt.questions)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validateQuestions() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("validateQuestions() error = nil, want containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("validateQuestions() error = %q, want containing %q", err.Error(), tt.wantErr)
			}
			// Authoring violations are client errors, so every one of them
			// must match the sentinel the HTTP layer maps to a 400.
			if !errors.Is(err, util.ErrInvalidQuestions) {
				t.Errorf("validateQuestions() error = %v, does not wrap ErrInvalidQuestions", err)
			}
		})
	}
}

func TestBuildQuestionsAssignsOrder(t *testing.T) {
	inputs := []QuestionInput{
		choiceQuestion(model.QuestionMultipleChoice, true, false),
		{QuestionType: model.QuestionShortAnswer, Prompt: "explain", Points: 3},
	}

	questions := buildQuestions(inputs)
	if len(questions) != 2 {
		t.Fatalf("buildQuestions() returned %d questions, want 2", len(questions))
	}
	for i, q := range questions {
		if q.Order != i {
			t.Errorf("question %d: Order = %d, want %d", i, q.Order, i)
		}
	}
	for j, o := range questions[0].Options {
		if o.Order != j {
			t.Errorf("option %d: Order = %d, want %d", j, o.Order, j)
		}
	}
	if questions[1].Options != nil {
		t.Errorf("short answer question should have no options, got %d", len(questions[1].Options))
	}
}
