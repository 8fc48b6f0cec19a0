package grading

import (
	"testing"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
)

func mcQuestion(id uint, points float64) model.Question {
	q := model.Question{QuestionType: model.QuestionMultipleChoice, Points: points}
	q.ID = id
	return q
}

func saQuestion(id uint, points float64) model.Question {
	q := model.Question{QuestionType: model.QuestionShortAnswer, Points: points}
	q.ID = id
	return q
}

func options(questionID uint, correctID uint, ids ...uint) []model.QuestionOption {
	out := make([]model.QuestionOption, 0, len(ids))
	for _, id := range ids {
		o := model.QuestionOption{QuestionID: questionID, IsCorrect: id == correctID}
		o.ID = id
		out = append(out, o)
	}
	return out
}

func TestAutoGrade(t *testing.T) {
	q := mcQuestion(1, 5)
	opts := options(1, 11, 10, 11, 12)

	tests := []struct {
		name          string
		selected      uint
		wantCorrect   *bool
		wantPoints    float64
		wantMissing   bool
		wantSelection bool
	}{
		{name: "correct option", selected: 11, wantCorrect: boolPtr(true), wantPoints: 5, wantSelection: true},
		{name: "wrong option", selected: 10, wantCorrect: boolPtr(false), wantPoints: 0, wantSelection: true},
		{name: "skipped", selected: 0, wantCorrect: nil, wantPoints: 0},
		{name: "stale option id", selected: 99, wantCorrect: nil, wantPoints: 0, wantMissing: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AutoGrade(q, opts, Answer{QuestionID: 1, SelectedOptionID: tc.selected})
			if got.PointsEarned != tc.wantPoints {
				t.Fatalf("points = %v, want %v", got.PointsEarned, tc.wantPoints)
			}
			if got.OptionMissing != tc.wantMissing {
				t.Fatalf("optionMissing = %v, want %v", got.OptionMissing, tc.wantMissing)
			}
			if tc.wantSelection && (got.SelectedOptionID == nil || *got.SelectedOptionID != tc.selected) {
				t.Fatalf("selectedOptionID = %v, want %d", got.SelectedOptionID, tc.selected)
			}
			assertCorrectness(t, got.IsCorrect, tc.wantCorrect)
		})
	}
}

func TestAutoGradeDeterministic(t *testing.T) {
	q := mcQuestion(7, 3)
	opts := options(7, 21, 20, 21)
	ans := Answer{QuestionID: 7, SelectedOptionID: 21}

	first := AutoGrade(q, opts, ans)
	for i := 0; i < 5; i++ {
		again := AutoGrade(q, opts, ans)
		if again.PointsEarned != first.PointsEarned || *again.IsCorrect != *first.IsCorrect {
			t.Fatalf("grading not deterministic on run %d: %+v vs %+v", i, again, first)
		}
	}
}

func TestAutoGradeShortAnswerStaysUngraded(t *testing.T) {
	q := saQuestion(3, 10)
	got := AutoGrade(q, nil, Answer{QuestionID: 3, Text: "photosynthesis"})
	if got.IsCorrect != nil {
		t.Fatalf("short answer should stay ungraded, got isCorrect=%v", *got.IsCorrect)
	}
	if got.PointsEarned != 0 {
		t.Fatalf("ungraded short answer earned %v points", got.PointsEarned)
	}
	if got.Text != "photosynthesis" {
		t.Fatalf("text not carried through: %q", got.Text)
	}
}

func TestClampPoints(t *testing.T) {
	tests := []struct {
		in, max, want float64
	}{
		{-5, 10, 0},
		{60, 10, 10},
		{12, 10, 10},
		{8, 10, 8},
		{0, 10, 0},
		{10, 10, 10},
	}
	for _, tc := range tests {
		if got := ClampPoints(tc.in, tc.max); got != tc.want {
			t.Errorf("ClampPoints(%v, %v) = %v, want %v", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestManualGrade(t *testing.T) {
	q := saQuestion(1, 10)

	earned, correct := ManualGrade(q, 8)
	if earned != 8 || !correct {
		t.Fatalf("ManualGrade(8) = (%v, %v), want (8, true)", earned, correct)
	}

	earned, correct = ManualGrade(q, 0)
	if earned != 0 || correct {
		t.Fatalf("ManualGrade(0) = (%v, %v), want (0, false)", earned, correct)
	}

	// Over-entry is clamped, not rejected.
	earned, correct = ManualGrade(q, 12)
	if earned != 10 || !correct {
		t.Fatalf("ManualGrade(12) = (%v, %v), want (10, true)", earned, correct)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		rawTotal float64
		rawMax   float64
		maxScore int
		want     int
	}{
		{"full marks", 10, 10, 100, 100},
		{"half marks", 5, 10, 100, 50},
		{"rounding up", 2, 3, 100, 67},
		{"rounding down", 1, 3, 100, 33},
		{"empty assessment", 0, 0, 100, 0},
		{"zero total", 0, 20, 100, 0},
		{"custom ceiling", 15, 20, 40, 30},
		{"never exceeds ceiling", 25, 20, 100, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.rawTotal, tc.rawMax, tc.maxScore); got != tc.want {
				t.Fatalf("Normalize(%v, %v, %d) = %d, want %d", tc.rawTotal, tc.rawMax, tc.maxScore, got, tc.want)
			}
		})
	}
}

func TestNormalizeBounds(t *testing.T) {
	for raw := 0.0; raw <= 20; raw++ {
		got := Normalize(raw, 20, 100)
		if got < 0 || got > 100 {
			t.Fatalf("Normalize(%v, 20, 100) = %d out of [0,100]", raw, got)
		}
	}
}

// Scenario A/B from the results surface: two 5-point multiple choice
// questions, max score 100.
func TestEndToEndObjectiveOnly(t *testing.T) {
	q1, q2 := mcQuestion(1, 5), mcQuestion(2, 5)
	opts1 := options(1, 11, 10, 11)
	opts2 := options(2, 22, 21, 22)
	questions := []model.Question{q1, q2}

	// Both correct.
	g1 := AutoGrade(q1, opts1, Answer{QuestionID: 1, SelectedOptionID: 11})
	g2 := AutoGrade(q2, opts2, Answer{QuestionID: 2, SelectedOptionID: 22})
	if got := Normalize(g1.PointsEarned+g2.PointsEarned, RawMax(questions), 100); got != 100 {
		t.Fatalf("both correct: score = %d, want 100", got)
	}

	// One correct, one wrong.
	g2 = AutoGrade(q2, opts2, Answer{QuestionID: 2, SelectedOptionID: 21})
	if got := Normalize(g1.PointsEarned+g2.PointsEarned, RawMax(questions), 100); got != 50 {
		t.Fatalf("one correct: score = %d, want 50", got)
	}
}

// Scenario C: one 10-point multiple choice plus one 10-point short answer.
// Initial submit scores 50 (short answer contributes 0), teacher awarding
// 8/10 lifts it to 90.
func TestEndToEndWithManualGrading(t *testing.T) {
	mc, sa := mcQuestion(1, 10), saQuestion(2, 10)
	opts := options(1, 11, 10, 11)
	questions := []model.Question{mc, sa}

	auto := AutoGrade(mc, opts, Answer{QuestionID: 1, SelectedOptionID: 11})
	free := AutoGrade(sa, nil, Answer{QuestionID: 2, Text: "mitochondria"})

	initial := Normalize(auto.PointsEarned+free.PointsEarned, RawMax(questions), 100)
	if initial != 50 {
		t.Fatalf("initial score = %d, want 50", initial)
	}

	earned, correct := ManualGrade(sa, 8)
	if !correct {
		t.Fatal("8/10 should mark the response correct")
	}
	regraded := Normalize(auto.PointsEarned+earned, RawMax(questions), 100)
	if regraded != 90 {
		t.Fatalf("regraded score = %d, want 90", regraded)
	}
}

func TestRawTotalTreatsNilAsZero(t *testing.T) {
	five := 5.0
	responses := []model.Response{
		{PointsEarned: &five},
		{PointsEarned: nil}, // ungraded short answer
	}
	if got := RawTotal(responses); got != 5 {
		t.Fatalf("RawTotal = %v, want 5", got)
	}
}

func TestUnanswered(t *testing.T) {
	questions := []model.Question{mcQuestion(1, 5), saQuestion(2, 5), mcQuestion(3, 5)}

	tests := []struct {
		name    string
		answers []Answer
		want    int
	}{
		{
			name: "all answered",
			answers: []Answer{
				{QuestionID: 1, SelectedOptionID: 10},
				{QuestionID: 2, Text: "an answer"},
				{QuestionID: 3, SelectedOptionID: 30},
			},
			want: 0,
		},
		{
			name: "choice skipped",
			answers: []Answer{
				{QuestionID: 1},
				{QuestionID: 2, Text: "an answer"},
				{QuestionID: 3, SelectedOptionID: 30},
			},
			want: 1,
		},
		{
			name: "blank text counts as unanswered",
			answers: []Answer{
				{QuestionID: 1, SelectedOptionID: 10},
				{QuestionID: 2, Text: ""},
				{QuestionID: 3, SelectedOptionID: 30},
			},
			want: 1,
		},
		{name: "empty payload", answers: nil, want: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Unanswered(questions, tc.answers); len(got) != tc.want {
				t.Fatalf("Unanswered = %v, want %d ids", got, tc.want)
			}
		})
	}
}

func assertCorrectness(t *testing.T, got, want *bool) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Fatalf("isCorrect = %v, want nil", *got)
		}
		return
	}
	if got == nil {
		t.Fatalf("isCorrect = nil, want %v", *want)
	}
	if *got != *want {
		t.Fatalf("isCorrect = %v, want %v", *got, *want)
	}
}

func boolPtr(v bool) *bool { return &v }
