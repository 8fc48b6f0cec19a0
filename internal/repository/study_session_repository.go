package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
)

type StudySessionRepository struct {
	db *gorm.DB
}

func NewStudySessionRepository(db *gorm.DB) *StudySessionRepository {
	return &StudySessionRepository{db: db}
}

func (r *StudySessionRepository) Create(session *model.StudySession) error {
	return r.db.Create(session).Error
}

func (r *StudySessionRepository) GetByID(id uint) (*model.StudySession, error) {
	var session model.StudySession
	err := r.db.First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

// GetOpenByUser finds the user's session without an end time, if any.
func (r *StudySessionRepository) GetOpenByUser(userID uint) (*model.StudySession, error) {
	var session model.StudySession
	err := r.db.Where("user_id = ? AND end_time IS NULL", userID).
		Order("start_time DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *StudySessionRepository) Update(session *model.StudySession) error {
	return r.db.Save(session).Error
}

func (r *StudySessionRepository) ListByUser(userID uint, since time.Time) ([]model.StudySession, error) {
	var sessions []model.StudySession
	query := r.db.Where("user_id = ?", userID)
	if !since.IsZero() {
		query = query.Where("start_time >= ?", since)
	}
	err := query.Order("start_time DESC").Find(&sessions).Error
	return sessions, err
}

func (r *StudySessionRepository) TotalMinutes(userID uint, since time.Time) (int64, error) {
	var total int64
	query := r.db.Model(&model.StudySession{}).Where("user_id = ? AND end_time IS NOT NULL", userID)
	if !since.IsZero() {
		query = query.Where("start_time >= ?", since)
	}
	err := query.Select("COALESCE(SUM(duration), 0)").Scan(&total).Error
	return total, err
}

func (r *StudySessionRepository) TotalMinutesBySchool(schoolID uint, since time.Time) (int64, error) {
	var total int64
	query := r.db.Model(&model.StudySession{}).
		Where("school_id = ? AND end_time IS NOT NULL", schoolID)
	if !since.IsZero() {
		query = query.Where("start_time >= ?", since)
	}
	err := query.Select("COALESCE(SUM(duration), 0)").Scan(&total).Error
	return total, err
}
