package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileRequest struct {
	Name   string `json:"name" binding:"omitempty,min=2,max=60"`
	Avatar string `json:"avatar" binding:"omitempty,max=255"`
}

func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.ErrUserNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

func (s *UserService) ChangePassword(userID uint, req *ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return util.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return util.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.userRepo.Update(user)
}

// SetMemberDisabled lets a school admin suspend or restore an account in
// their own school.
func (s *UserService) SetMemberDisabled(schoolID, memberID uint, disabled bool) error {
	member, err := s.userRepo.GetByID(memberID)
	if err != nil {
		return err
	}
	if member == nil || member.SchoolID == nil || *member.SchoolID != schoolID {
		return util.ErrUserNotFound
	}
	if member.Role == model.SchoolAdmin {
		return util.ErrPermissionDenied
	}
	return s.userRepo.SetDisabled(memberID, disabled)
}

// ResetMemberPassword lets a school admin set a new password for a member of
// their school.
func (s *UserService) ResetMemberPassword(schoolID, memberID uint, newPassword string) error {
	member, err := s.userRepo.GetByID(memberID)
	if err != nil {
		return err
	}
	if member == nil || member.SchoolID == nil || *member.SchoolID != schoolID {
		return util.ErrUserNotFound
	}
	if member.Role == model.SchoolAdmin {
		return util.ErrPermissionDenied
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	member.Password = string(hashed)
	return s.userRepo.Update(member)
}

func (s *UserService) RemoveMember(schoolID, memberID uint) error {
	member, err := s.userRepo.GetByID(memberID)
	if err != nil {
		return err
	}
	if member == nil || member.SchoolID == nil || *member.SchoolID != schoolID {
		return util.ErrUserNotFound
	}
	if member.Role == model.SchoolAdmin {
		return util.ErrPermissionDenied
	}
	return s.userRepo.Delete(memberID)
}
