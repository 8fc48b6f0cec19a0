package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/service"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// RegisterSchool godoc
// @Summary Register a school
// @Description Creates a school with its join code and the first school admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterSchoolRequest true "School and admin details"
// @Success 201 {object} util.Response{data=service.AuthResponse}
// @Failure 409 {object} util.Response
// @Router /api/auth/register-school [post]
func (ctrl *AuthController) RegisterSchool(c *gin.Context) {
	var req service.RegisterSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	resp, err := ctrl.authService.RegisterSchool(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, resp)
}

// Register godoc
// @Summary Register with a code
// @Description Signs up using a school join code (students) or an invitation code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterWithCodeRequest true "Account details and code"
// @Success 201 {object} util.Response{data=service.AuthResponse}
// @Failure 400 {object} util.Response
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req service.RegisterWithCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	resp, err := ctrl.authService.RegisterWithCode(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, resp)
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.AuthResponse}
// @Failure 401 {object} util.Response
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	resp, err := ctrl.authService.Login(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, resp)
}

// Profile godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.UserResponse}
// @Router /api/me [get]
func (ctrl *AuthController) Profile(c *gin.Context) {
	resp, err := ctrl.authService.GetProfile(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, resp)
}
