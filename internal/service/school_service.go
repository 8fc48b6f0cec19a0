package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type SchoolService struct {
	schoolRepo *repository.SchoolRepository
	userRepo   *repository.UserRepository
}

func NewSchoolService(schoolRepo *repository.SchoolRepository, userRepo *repository.UserRepository) *SchoolService {
	return &SchoolService{schoolRepo: schoolRepo, userRepo: userRepo}
}

func (s *SchoolService) GetSchool(schoolID uint) (*model.School, error) {
	school, err := s.schoolRepo.GetByID(schoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, util.ErrSchoolNotFound
	}
	return school, nil
}

type UpdateSchoolRequest struct {
	Name         string `json:"name" binding:"omitempty,min=2,max=120"`
	Address      string `json:"address" binding:"omitempty,max=255"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

func (s *SchoolService) UpdateSchool(schoolID uint, req *UpdateSchoolRequest) (*model.School, error) {
	school, err := s.GetSchool(schoolID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		school.Name = req.Name
	}
	if req.Address != "" {
		school.Address = req.Address
	}
	if req.ContactEmail != "" {
		school.ContactEmail = req.ContactEmail
	}

	if err := s.schoolRepo.Update(school); err != nil {
		return nil, err
	}
	return school, nil
}

// RotateJoinCode invalidates the current student join code and issues a new
// one.
func (s *SchoolService) RotateJoinCode(schoolID uint) (*model.School, error) {
	school, err := s.GetSchool(schoolID)
	if err != nil {
		return nil, err
	}

	code, err := util.GenerateCode(8)
	if err != nil {
		return nil, err
	}

	school.Code = code
	if err := s.schoolRepo.Update(school); err != nil {
		return nil, err
	}
	return school, nil
}

type CreateInvitationRequest struct {
	Role       model.UserRole `json:"role" binding:"required,oneof=student teacher"`
	Email      string         `json:"email" binding:"omitempty,email"`
	ExpiresInH int            `json:"expires_in_hours" binding:"omitempty,min=1,max=2160"`
}

func (s *SchoolService) CreateInvitation(schoolID uint, req *CreateInvitationRequest) (*model.Invitation, error) {
	hours := req.ExpiresInH
	if hours == 0 {
		hours = 7 * 24
	}

	code, err := util.GenerateCode(10)
	if err != nil {
		return nil, err
	}

	inv := &model.Invitation{
		SchoolID:  schoolID,
		Code:      code,
		Role:      req.Role,
		Email:     strings.ToLower(req.Email),
		ExpiresAt: time.Now().Add(time.Duration(hours) * time.Hour),
	}
	if err := s.schoolRepo.CreateInvitation(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *SchoolService) ListInvitations(schoolID uint) ([]model.Invitation, error) {
	return s.schoolRepo.ListInvitations(schoolID)
}

func (s *SchoolService) RevokeInvitation(schoolID, invID uint) error {
	err := s.schoolRepo.RevokeInvitation(schoolID, invID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrInvitationNotUsable
	}
	return err
}

type CreateAPIKeyRequest struct {
	Name string `json:"name" binding:"omitempty,max=100"`
	// Key is the school's own provider key. Left empty, a random 32-byte hex
	// secret is generated instead.
	Key string `json:"key" binding:"omitempty,min=16,max=128"`
}

// RegisterAPIKey stores an AI key for the school and revokes the previous
// active one so exactly one key is live at a time.
func (s *SchoolService) RegisterAPIKey(schoolID uint, req *CreateAPIKeyRequest) (*model.SchoolAPIKey, error) {
	secret := req.Key
	if secret == "" {
		generated, err := util.GenerateAPIKey()
		if err != nil {
			return nil, err
		}
		secret = generated
	}

	now := time.Now()
	if current, err := s.schoolRepo.GetActiveAPIKey(schoolID); err != nil {
		return nil, err
	} else if current != nil {
		if err := s.schoolRepo.RevokeAPIKey(schoolID, current.ID, now); err != nil {
			return nil, err
		}
	}

	key := &model.SchoolAPIKey{
		SchoolID: schoolID,
		Name:     req.Name,
		Key:      secret,
		KeyHint:  util.KeyHint(secret),
	}
	if err := s.schoolRepo.CreateAPIKey(key); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *SchoolService) ListAPIKeys(schoolID uint) ([]model.SchoolAPIKey, error) {
	return s.schoolRepo.ListAPIKeys(schoolID)
}

func (s *SchoolService) RevokeAPIKey(schoolID, keyID uint) error {
	err := s.schoolRepo.RevokeAPIKey(schoolID, keyID, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNoActiveAPIKey
	}
	return err
}

// ListSchools is the platform admin's tenant listing.
func (s *SchoolService) ListSchools(page, pageSize int) ([]model.School, int64, error) {
	return s.schoolRepo.List(page, pageSize)
}

// SetSchoolActive suspends or restores a whole tenant.
func (s *SchoolService) SetSchoolActive(schoolID uint, active bool) (*model.School, error) {
	school, err := s.GetSchool(schoolID)
	if err != nil {
		return nil, err
	}
	school.Active = active
	if err := s.schoolRepo.Update(school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) ListMembers(schoolID uint, role model.UserRole, page, pageSize int) ([]UserResponse, int64, error) {
	users, total, err := s.userRepo.ListBySchool(schoolID, role, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return resp, total, nil
}
