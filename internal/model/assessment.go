package model

import "time"

const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionShortAnswer    = "short_answer"
)

// IsChoiceType reports whether a question type is graded against an option
// set rather than free text.
func IsChoiceType(questionType string) bool {
	return questionType == QuestionMultipleChoice || questionType == QuestionTrueFalse
}

// swagger:model Assessment
type Assessment struct {
	BaseModel
	SchoolID    uint       `gorm:"index;type:bigint unsigned;not null" json:"schoolId"`
	TeacherID   uint       `gorm:"index;type:bigint unsigned;not null" json:"teacherId"`
	Teacher     *User      `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Subject     string     `gorm:"size:100" json:"subject"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	MaxScore    int        `gorm:"default:100" json:"maxScore"` // normalized ceiling
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Questions   []Question `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// swagger:model Question
type Question struct {
	BaseModel
	AssessmentID uint             `gorm:"index;type:bigint unsigned;not null" json:"assessmentId"`
	QuestionType string           `gorm:"size:50;not null" json:"questionType"` // multiple_choice, true_false, short_answer
	Prompt       string           `gorm:"type:text;not null" json:"prompt"`
	Points       float64          `gorm:"default:1" json:"points"` // raw weight, > 0
	Order        int              `gorm:"default:0" json:"order"`
	Options      []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model QuestionOption
type QuestionOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Text       string `gorm:"size:500;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
