package model

const (
	DocumentPending = "pending"
	DocumentReady   = "ready"
	DocumentFailed  = "failed"
)

// Document is a school-scoped upload used as retrieval context for the AI
// tutor. ExtractedText is only populated for plain-text content; binary
// uploads stay searchable by title.
// swagger:model Document
type Document struct {
	BaseModel
	SchoolID      uint   `gorm:"index;type:bigint unsigned;not null" json:"schoolId"`
	UploaderID    uint   `gorm:"index;type:bigint unsigned;not null" json:"uploaderId"`
	Title         string `gorm:"size:255;not null" json:"title"`
	FileName      string `gorm:"size:255" json:"fileName"`
	ContentType   string `gorm:"size:100" json:"contentType"`
	Size          int64  `gorm:"default:0" json:"size"`
	StorageKey    string `gorm:"size:255" json:"-"`
	URL           string `gorm:"size:255" json:"url"`
	Status        string `gorm:"size:20;default:'pending'" json:"status"` // pending, ready, failed
	ExtractedText string `gorm:"type:mediumtext" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}
