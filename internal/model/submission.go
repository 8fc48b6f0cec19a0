package model

import "time"

// AttemptState is derived, never stored. A submission row only exists once
// the student has actually submitted; "in progress" lives in Redis as a
// start marker.
type AttemptState string

const (
	AttemptNotStarted AttemptState = "not_started"
	AttemptInProgress AttemptState = "in_progress"
	AttemptCompleted  AttemptState = "completed"
	AttemptGraded     AttemptState = "graded"
)

// Submission records one student's completed attempt at an assessment.
// At most one row exists per (assessment, student).
// swagger:model Submission
type Submission struct {
	BaseModel
	AssessmentID uint       `gorm:"uniqueIndex:uq_assessment_student;type:bigint unsigned;not null" json:"assessmentId"`
	StudentID    uint       `gorm:"uniqueIndex:uq_assessment_student;index;type:bigint unsigned;not null" json:"studentId"`
	Student      *User      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Completed    bool       `gorm:"default:false" json:"completed"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
	TimeSpent    int        `gorm:"default:0" json:"timeSpent"` // seconds
	Score        int        `gorm:"default:0" json:"score"`     // normalized, in [0, assessment.maxScore]
	Feedback     string     `gorm:"type:text" json:"feedback"`
	GradedAt     *time.Time `json:"gradedAt,omitempty"`
	Responses    []Response `gorm:"foreignKey:SubmissionID" json:"responses,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Response is one answer within a submission. The unique index on
// (submission_id, question_id) keeps resubmission idempotent.
// swagger:model Response
type Response struct {
	BaseModel
	SubmissionID     uint     `gorm:"uniqueIndex:uq_submission_question;type:bigint unsigned;not null" json:"submissionId"`
	QuestionID       uint     `gorm:"uniqueIndex:uq_submission_question;index;type:bigint unsigned;not null" json:"questionId"`
	SelectedOptionID *uint    `gorm:"type:bigint unsigned" json:"selectedOptionId,omitempty"` // choice questions only
	TextResponse     string   `gorm:"type:text" json:"textResponse,omitempty"`                // short answer only
	IsCorrect        *bool    `json:"isCorrect,omitempty"`                                    // nil until graded
	PointsEarned     *float64 `json:"pointsEarned,omitempty"`                                 // nil until graded
}

func (Response) TableName() string {
	return "responses"
}

// State derives the lifecycle position of a submission row. in_progress is
// handled by the attempt service before a row exists; a row is therefore
// always at least completed once present.
func (s *Submission) State(ungradedShortAnswers int) AttemptState {
	if s == nil || s.ID == 0 {
		return AttemptNotStarted
	}
	if !s.Completed {
		return AttemptInProgress
	}
	if ungradedShortAnswers == 0 && s.GradedAt != nil {
		return AttemptGraded
	}
	return AttemptCompleted
}
