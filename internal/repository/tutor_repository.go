package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
)

type TutorRepository struct {
	db *gorm.DB
}

func NewTutorRepository(db *gorm.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

func (r *TutorRepository) CreateSession(session *model.TutorSession) error {
	return r.db.Create(session).Error
}

func (r *TutorRepository) GetSession(id string) (*model.TutorSession, error) {
	var session model.TutorSession
	err := r.db.Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *TutorRepository) ListSessions(userID uint, page, pageSize int) ([]model.TutorSession, int64, error) {
	var sessions []model.TutorSession
	var total int64

	query := r.db.Model(&model.TutorSession{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *TutorRepository) UpdateSession(session *model.TutorSession) error {
	return r.db.Save(session).Error
}

func (r *TutorRepository) DeleteSession(id string, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.TutorSession{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("session_id = ?", id).Delete(&model.TutorMessage{}).Error
	})
}

func (r *TutorRepository) AppendMessage(msg *model.TutorMessage) error {
	return r.db.Create(msg).Error
}

func (r *TutorRepository) ListMessages(sessionID string, limit int) ([]model.TutorMessage, error) {
	var messages []model.TutorMessage
	query := r.db.Where("session_id = ?", sessionID).Order("created_at")
	if limit > 0 {
		// Take the most recent N, then restore chronological order.
		var recent []model.TutorMessage
		err := r.db.Where("session_id = ?", sessionID).
			Order("created_at DESC").
			Limit(limit).
			Find(&recent).Error
		if err != nil {
			return nil, err
		}
		for i := len(recent) - 1; i >= 0; i-- {
			messages = append(messages, recent[i])
		}
		return messages, nil
	}
	err := query.Find(&messages).Error
	return messages, err
}

func (r *TutorRepository) CountMessagesBySchoolSince(schoolID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.TutorMessage{}).
		Joins("JOIN tutor_sessions ON tutor_sessions.id = tutor_messages.session_id").
		Where("tutor_sessions.school_id = ? AND tutor_messages.created_at >= ?", schoolID, since).
		Count(&count).Error
	return count, err
}
