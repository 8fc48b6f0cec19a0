package model

import "time"

// StudySession tracks one study period for analytics reporting.
type StudySession struct {
	BaseModel
	UserID    uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	SchoolID  uint       `gorm:"index;type:bigint unsigned;not null" json:"schoolId"`
	Topic     string     `gorm:"size:255" json:"topic"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  int        `gorm:"default:0" json:"duration"` // minutes
}

func (StudySession) TableName() string {
	return "study_sessions"
}
