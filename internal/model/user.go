package model

import (
	"time"
)

type UserRole string

const (
	Student     UserRole = "student"
	Teacher     UserRole = "teacher"
	SchoolAdmin UserRole = "school_admin"
	Admin       UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('student','teacher','school_admin','admin');default:'student'" json:"role"`
	SchoolID  *uint     `gorm:"index;type:bigint unsigned" json:"schoolId,omitempty"` // nil for platform admins
	School    *School   `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
