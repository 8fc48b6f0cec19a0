package service

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/config"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type AuthService struct {
	userRepo   *repository.UserRepository
	schoolRepo *repository.SchoolRepository
	cfg        *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, schoolRepo *repository.SchoolRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, schoolRepo: schoolRepo, cfg: cfg}
}

type RegisterSchoolRequest struct {
	SchoolName   string `json:"school_name" binding:"required,min=2,max=120"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	AdminName    string `json:"admin_name" binding:"required,min=2,max=60"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
}

type RegisterWithCodeRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Code     string `json:"code" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Role     model.UserRole `json:"role"`
	SchoolID uint           `json:"school_id,omitempty"`
}

func toUserResponse(user *model.User) UserResponse {
	resp := UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.SchoolID != nil {
		resp.SchoolID = *user.SchoolID
	}
	return resp
}

// RegisterSchool creates a school, its join code, and its first admin in one
// transaction.
func (s *AuthService) RegisterSchool(req *RegisterSchoolRequest) (*AuthResponse, error) {
	existing, err := s.userRepo.GetByEmail(strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrEmailRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	code, err := util.GenerateCode(8)
	if err != nil {
		return nil, err
	}

	school := &model.School{
		Name:         req.SchoolName,
		ContactEmail: req.ContactEmail,
		Code:         code,
	}
	admin := &model.User{
		Name:     req.AdminName,
		Email:    strings.ToLower(req.Email),
		Password: string(hashed),
		Role:     model.SchoolAdmin,
	}

	err = s.schoolRepo.WithTx(func(tx *gorm.DB) error {
		if err := tx.Create(school).Error; err != nil {
			return err
		}
		admin.SchoolID = &school.ID
		return tx.Create(admin).Error
	})
	if err != nil {
		return nil, err
	}

	return s.issueToken(admin)
}

// RegisterWithCode signs a user up against either a school join code
// (students) or an invitation code (teachers, or role carried by the
// invitation).
func (s *AuthService) RegisterWithCode(req *RegisterWithCodeRequest) (*AuthResponse, error) {
	email := strings.ToLower(req.Email)

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrEmailRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	// School join codes register students directly.
	if school, err := s.schoolRepo.GetByCode(code); err != nil {
		return nil, err
	} else if school != nil {
		user := &model.User{
			Name:     req.Name,
			Email:    email,
			Password: string(hashed),
			Role:     model.Student,
			SchoolID: &school.ID,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		return s.issueToken(user)
	}

	inv, err := s.schoolRepo.GetInvitationByCode(code)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, util.ErrInvalidSchoolCode
	}
	if !inv.Usable(time.Now()) {
		return nil, util.ErrInvitationNotUsable
	}
	if inv.Email != "" && !strings.EqualFold(inv.Email, email) {
		return nil, util.ErrInvitationEmail
	}

	user := &model.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hashed),
		Role:     inv.Role,
		SchoolID: &inv.SchoolID,
	}

	err = s.schoolRepo.WithTx(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return s.schoolRepo.MarkInvitationAccepted(tx, inv.ID, user.ID, time.Now())
	})
	if err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.Disabled {
		return nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	// Suspended tenants cannot sign in.
	if user.SchoolID != nil {
		school, err := s.schoolRepo.GetByID(*user.SchoolID)
		if err != nil {
			return nil, err
		}
		if school == nil || !school.Active {
			return nil, util.ErrInvalidCredentials
		}
	}

	_ = s.userRepo.TouchLastLogin(user.ID, time.Now())

	return s.issueToken(user)
}

func (s *AuthService) GetProfile(userID uint) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.ErrUserNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) issueToken(user *model.User) (*AuthResponse, error) {
	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}
