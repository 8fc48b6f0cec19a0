// Package grading holds the pure scoring logic for the assessment pipeline.
// Nothing here touches the database: callers fetch questions, options and
// answers, and persist whatever comes back. Given the same inputs the
// results are always identical.
package grading

import (
	"math"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
)

// Answer is a student's raw input for one question. SelectedOptionID is 0
// when no option was picked; Text is empty when nothing was typed.
type Answer struct {
	QuestionID       uint
	SelectedOptionID uint
	Text             string
}

// Answered reports whether the answer carries any content for the given
// question type.
func (a Answer) Answered(questionType string) bool {
	if model.IsChoiceType(questionType) {
		return a.SelectedOptionID != 0
	}
	return a.Text != ""
}

// GradedAnswer is the outcome of grading a single answer. IsCorrect stays
// nil for skipped choice questions and for short answers awaiting a teacher.
type GradedAnswer struct {
	QuestionID       uint
	SelectedOptionID *uint
	Text             string
	IsCorrect        *bool
	PointsEarned     float64
	OptionMissing    bool // selected option id not found in the option set
}

// AutoGrade grades an objective (choice-type) answer against the question's
// option set: full points when the selected option is flagged correct, zero
// otherwise. A skipped question or a stale option id earns no credit and
// leaves IsCorrect nil; the caller decides whether to log the stale id.
func AutoGrade(q model.Question, options []model.QuestionOption, ans Answer) GradedAnswer {
	out := GradedAnswer{QuestionID: q.ID}

	if !model.IsChoiceType(q.QuestionType) {
		// Short answers wait for manual grading.
		out.Text = ans.Text
		return out
	}

	if ans.SelectedOptionID == 0 {
		return out
	}

	for _, opt := range options {
		if opt.ID == ans.SelectedOptionID {
			selected := opt.ID
			out.SelectedOptionID = &selected
			correct := opt.IsCorrect
			out.IsCorrect = &correct
			if correct {
				out.PointsEarned = q.Points
			}
			return out
		}
	}

	// Stale reference: treat as unanswered rather than failing the submit.
	out.OptionMissing = true
	return out
}

// ClampPoints bounds a manually entered point value to [0, max]. Teachers
// over-entering is tolerated, not rejected.
func ClampPoints(points, max float64) float64 {
	if points < 0 {
		return 0
	}
	if points > max {
		return max
	}
	return points
}

// ManualGrade applies a teacher-entered point value to a short-answer
// response. A nonzero award marks the response correct; zero marks it
// incorrect. The returned value is always within [0, q.Points].
func ManualGrade(q model.Question, points float64) (earned float64, isCorrect bool) {
	earned = ClampPoints(points, q.Points)
	return earned, earned > 0
}

// RawMax sums the point weights of every question, regardless of type.
func RawMax(questions []model.Question) float64 {
	var total float64
	for _, q := range questions {
		total += q.Points
	}
	return total
}

// RawTotal sums points earned across responses, treating ungraded (nil)
// values as zero.
func RawTotal(responses []model.Response) float64 {
	var total float64
	for _, r := range responses {
		if r.PointsEarned != nil {
			total += *r.PointsEarned
		}
	}
	return total
}

// Normalize maps a raw point total onto the assessment's configured score
// ceiling. An assessment with no questions (rawMax == 0) normalizes to 0
// rather than dividing. The result is always within [0, maxScore].
func Normalize(rawTotal, rawMax float64, maxScore int) int {
	if rawMax <= 0 {
		return 0
	}
	score := int(math.Round(rawTotal / rawMax * float64(maxScore)))
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// Unanswered returns the ids of questions with no usable answer in the
// payload. Used for server-side completeness validation before a submit is
// accepted.
func Unanswered(questions []model.Question, answers []Answer) []uint {
	byQuestion := make(map[uint]Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	var missing []uint
	for _, q := range questions {
		a, ok := byQuestion[q.ID]
		if !ok || !a.Answered(q.QuestionType) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}
