package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login", at).Error
}

// TouchLastSeen only writes when the stored value is stale by a minute or
// more, so busy clients do not hammer the users table.
func (r *UserRepository) TouchLastSeen(id uint, at time.Time) error {
	return r.db.Model(&model.User{}).
		Where("id = ? AND (last_seen IS NULL OR last_seen < ?)", id, at.Add(-time.Minute)).
		Update("last_seen", at).Error
}

func (r *UserRepository) ListBySchool(schoolID uint, role model.UserRole, page, pageSize int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.db.Model(&model.User{}).Where("school_id = ?", schoolID)
	if role != "" {
		query = query.Where("role = ?", role)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepository) CountBySchool(schoolID uint, role model.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("school_id = ? AND role = ?", schoolID, role).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) CountActiveSince(schoolID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("school_id = ? AND last_seen >= ?", schoolID, since).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) SetDisabled(id uint, disabled bool) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("disabled", disabled).Error
}

func (r *UserRepository) Delete(id uint) error {
	return r.db.Delete(&model.User{}, id).Error
}
