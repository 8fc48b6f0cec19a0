package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
)

type SchoolRepository struct {
	db *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

func (r *SchoolRepository) Create(school *model.School) error {
	return r.db.Create(school).Error
}

func (r *SchoolRepository) GetByID(id uint) (*model.School, error) {
	var school model.School
	err := r.db.First(&school, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &school, err
}

func (r *SchoolRepository) GetByCode(code string) (*model.School, error) {
	var school model.School
	err := r.db.Where("code = ?", code).First(&school).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &school, err
}

func (r *SchoolRepository) Update(school *model.School) error {
	return r.db.Save(school).Error
}

func (r *SchoolRepository) List(page, pageSize int) ([]model.School, int64, error) {
	var schools []model.School
	var total int64

	if err := r.db.Model(&model.School{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&schools).Error
	return schools, total, err
}

// Invitations

func (r *SchoolRepository) CreateInvitation(inv *model.Invitation) error {
	return r.db.Create(inv).Error
}

func (r *SchoolRepository) GetInvitationByCode(code string) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.db.Where("code = ?", code).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inv, err
}

func (r *SchoolRepository) ListInvitations(schoolID uint) ([]model.Invitation, error) {
	var invs []model.Invitation
	err := r.db.Where("school_id = ?", schoolID).
		Order("created_at DESC").
		Find(&invs).Error
	return invs, err
}

func (r *SchoolRepository) MarkInvitationAccepted(tx *gorm.DB, invID, userID uint, at time.Time) error {
	return tx.Model(&model.Invitation{}).Where("id = ?", invID).Updates(map[string]interface{}{
		"accepted_by": userID,
		"accepted_at": at,
	}).Error
}

func (r *SchoolRepository) RevokeInvitation(schoolID, invID uint) error {
	result := r.db.Where("id = ? AND school_id = ? AND accepted_by IS NULL", invID, schoolID).
		Delete(&model.Invitation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// API keys

func (r *SchoolRepository) CreateAPIKey(key *model.SchoolAPIKey) error {
	return r.db.Create(key).Error
}

func (r *SchoolRepository) GetActiveAPIKey(schoolID uint) (*model.SchoolAPIKey, error) {
	var key model.SchoolAPIKey
	err := r.db.Where("school_id = ? AND revoked_at IS NULL", schoolID).
		Order("created_at DESC").
		First(&key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &key, err
}

func (r *SchoolRepository) ListAPIKeys(schoolID uint) ([]model.SchoolAPIKey, error) {
	var keys []model.SchoolAPIKey
	err := r.db.Where("school_id = ?", schoolID).
		Order("created_at DESC").
		Find(&keys).Error
	return keys, err
}

func (r *SchoolRepository) RevokeAPIKey(schoolID, keyID uint, at time.Time) error {
	result := r.db.Model(&model.SchoolAPIKey{}).
		Where("id = ? AND school_id = ? AND revoked_at IS NULL", keyID, schoolID).
		Update("revoked_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// WithTx runs fn in a transaction. Registration flows create a school and
// its first admin atomically.
func (r *SchoolRepository) WithTx(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}
