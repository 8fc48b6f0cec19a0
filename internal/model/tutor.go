package model

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

const (
	SourceLLM       = "llm"
	SourceDocuments = "documents"
)

// TutorSession groups one student's conversation with the AI tutor.
type TutorSession struct {
	UUIDBase
	UserID   uint           `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	SchoolID uint           `gorm:"index;type:bigint unsigned;not null" json:"schoolId"`
	Title    string         `gorm:"size:255" json:"title"` // first question, truncated
	Topic    string         `gorm:"size:100" json:"topic"`
	Messages []TutorMessage `gorm:"foreignKey:SessionID" json:"messages,omitempty"`
}

func (TutorSession) TableName() string {
	return "tutor_sessions"
}

type TutorMessage struct {
	UUIDBase
	SessionID string `gorm:"index;type:varchar(36);not null" json:"sessionId"`
	Role      string `gorm:"type:enum('user','assistant');default:'user'" json:"role"`
	Content   string `gorm:"type:text" json:"content"`
	Source    string `gorm:"size:20" json:"source"` // documents or llm
}

func (TutorMessage) TableName() string {
	return "tutor_messages"
}
