package model

import "time"

// School is the tenant boundary. Every teacher, student, assessment and
// document belongs to exactly one school.
// swagger:model School
type School struct {
	BaseModel
	Name         string `gorm:"size:255;not null" json:"name"`
	Code         string `gorm:"size:12;uniqueIndex;not null" json:"code"` // join code shared with staff/students
	Address      string `gorm:"size:255" json:"address"`
	ContactEmail string `gorm:"size:100" json:"contactEmail"`
	Active       bool   `gorm:"default:true" json:"active"`
}

func (School) TableName() string {
	return "schools"
}

// Invitation lets a school admin pre-authorize a teacher or student email.
// Registering with a valid code attaches the new account to the school.
// swagger:model Invitation
type Invitation struct {
	BaseModel
	SchoolID   uint       `gorm:"index;type:bigint unsigned;not null" json:"schoolId"`
	Code       string     `gorm:"size:16;uniqueIndex;not null" json:"code"`
	Role       UserRole   `gorm:"type:enum('student','teacher');default:'student'" json:"role"`
	Email      string     `gorm:"size:100" json:"email"` // optional, restricts who may redeem
	ExpiresAt  time.Time  `json:"expiresAt"`
	AcceptedBy *uint      `gorm:"type:bigint unsigned" json:"acceptedBy,omitempty"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) Usable(now time.Time) bool {
	return i.AcceptedBy == nil && now.Before(i.ExpiresAt)
}

// SchoolAPIKey stores a per-school AI provider key. The tutor service prefers
// an active school key over the globally configured one.
// swagger:model SchoolAPIKey
type SchoolAPIKey struct {
	BaseModel
	SchoolID  uint       `gorm:"index;type:bigint unsigned;not null" json:"schoolId"`
	Name      string     `gorm:"size:100" json:"name"`
	Key       string     `gorm:"size:128;not null" json:"-"`
	KeyHint   string     `gorm:"size:12" json:"keyHint"` // last 4 chars, for listings
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
}

func (SchoolAPIKey) TableName() string {
	return "school_api_keys"
}
