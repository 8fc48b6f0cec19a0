package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *model.Document) error {
	return r.db.Create(doc).Error
}

func (r *DocumentRepository) GetByID(id uint) (*model.Document, error) {
	var doc model.Document
	err := r.db.First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *DocumentRepository) ListBySchool(schoolID uint, page, pageSize int) ([]model.Document, int64, error) {
	var docs []model.Document
	var total int64

	query := r.db.Model(&model.Document{}).Where("school_id = ?", schoolID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&docs).Error
	return docs, total, err
}

func (r *DocumentRepository) UpdateStatus(id uint, status string, extractedText string) error {
	updates := map[string]interface{}{"status": status}
	if extractedText != "" {
		updates["extracted_text"] = extractedText
	}
	return r.db.Model(&model.Document{}).Where("id = ?", id).Updates(updates).Error
}

func (r *DocumentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Document{}, id).Error
}

// SearchText returns ready documents whose extracted text matches the query,
// used to ground tutor answers in school material.
func (r *DocumentRepository) SearchText(schoolID uint, query string, limit int) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.Where("school_id = ? AND status = ? AND extracted_text LIKE ?",
		schoolID, model.DocumentReady, "%"+query+"%").
		Limit(limit).
		Find(&docs).Error
	return docs, err
}
