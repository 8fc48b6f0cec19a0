package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/service"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type SchoolController struct {
	schoolService *service.SchoolService
	userService   *service.UserService
}

func NewSchoolController(schoolService *service.SchoolService, userService *service.UserService) *SchoolController {
	return &SchoolController{schoolService: schoolService, userService: userService}
}

// GetSchool godoc
// @Summary Current school details
// @Tags school
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.School}
// @Router /api/school [get]
func (ctrl *SchoolController) GetSchool(c *gin.Context) {
	school, err := ctrl.schoolService.GetSchool(currentSchoolID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, school)
}

func (ctrl *SchoolController) UpdateSchool(c *gin.Context) {
	var req service.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	school, err := ctrl.schoolService.UpdateSchool(currentSchoolID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, school)
}

// RotateJoinCode godoc
// @Summary Rotate the student join code
// @Tags school
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.School}
// @Router /api/school/rotate-code [post]
func (ctrl *SchoolController) RotateJoinCode(c *gin.Context) {
	school, err := ctrl.schoolService.RotateJoinCode(currentSchoolID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, school)
}

// CreateInvitation godoc
// @Summary Invite a teacher or student
// @Tags school
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateInvitationRequest true "Invitation details"
// @Success 201 {object} util.Response{data=model.Invitation}
// @Router /api/school/invitations [post]
func (ctrl *SchoolController) CreateInvitation(c *gin.Context) {
	var req service.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	inv, err := ctrl.schoolService.CreateInvitation(currentSchoolID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, inv)
}

func (ctrl *SchoolController) ListInvitations(c *gin.Context) {
	invs, err := ctrl.schoolService.ListInvitations(currentSchoolID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, invs)
}

func (ctrl *SchoolController) RevokeInvitation(c *gin.Context) {
	invID := util.MustParseUint(c.Param("id"))
	if invID == 0 {
		util.BadRequest(c, "invalid invitation id")
		return
	}

	if err := ctrl.schoolService.RevokeInvitation(currentSchoolID(c), invID); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

// RegisterAPIKey godoc
// @Summary Register the school's AI provider key
// @Description Stores the key and revokes the previously active one
// @Tags school
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateAPIKeyRequest true "Key details"
// @Success 201 {object} util.Response{data=model.SchoolAPIKey}
// @Router /api/school/api-keys [post]
func (ctrl *SchoolController) RegisterAPIKey(c *gin.Context) {
	var req service.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	key, err := ctrl.schoolService.RegisterAPIKey(currentSchoolID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, key)
}

func (ctrl *SchoolController) ListAPIKeys(c *gin.Context) {
	keys, err := ctrl.schoolService.ListAPIKeys(currentSchoolID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, keys)
}

func (ctrl *SchoolController) RevokeAPIKey(c *gin.Context) {
	keyID := util.MustParseUint(c.Param("id"))
	if keyID == 0 {
		util.BadRequest(c, "invalid key id")
		return
	}

	if err := ctrl.schoolService.RevokeAPIKey(currentSchoolID(c), keyID); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

// ListMembers godoc
// @Summary List school members
// @Tags school
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role (student, teacher)"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/school/members [get]
func (ctrl *SchoolController) ListMembers(c *gin.Context) {
	page, limit := pagination(c)
	role := model.UserRole(c.Query("role"))

	members, total, err := ctrl.schoolService.ListMembers(currentSchoolID(c), role, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Page(c, members, total, page, limit)
}

func (ctrl *SchoolController) SetMemberDisabled(c *gin.Context) {
	memberID := util.MustParseUint(c.Param("id"))
	if memberID == 0 {
		util.BadRequest(c, "invalid member id")
		return
	}

	var req struct {
		Disabled bool `json:"disabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctrl.userService.SetMemberDisabled(currentSchoolID(c), memberID, req.Disabled); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

func (ctrl *SchoolController) ResetMemberPassword(c *gin.Context) {
	memberID := util.MustParseUint(c.Param("id"))
	if memberID == 0 {
		util.BadRequest(c, "invalid member id")
		return
	}

	var req struct {
		NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctrl.userService.ResetMemberPassword(currentSchoolID(c), memberID, req.NewPassword); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

// AdminListSchools is the platform admin's tenant listing.
func (ctrl *SchoolController) AdminListSchools(c *gin.Context) {
	page, limit := pagination(c)
	schools, total, err := ctrl.schoolService.ListSchools(page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Page(c, schools, total, page, limit)
}

func (ctrl *SchoolController) AdminSetSchoolActive(c *gin.Context) {
	schoolID := util.MustParseUint(c.Param("id"))
	if schoolID == 0 {
		util.BadRequest(c, "invalid school id")
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	school, err := ctrl.schoolService.SetSchoolActive(schoolID, req.Active)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, school)
}

func (ctrl *SchoolController) RemoveMember(c *gin.Context) {
	memberID := util.MustParseUint(c.Param("id"))
	if memberID == 0 {
		util.BadRequest(c, "invalid member id")
		return
	}

	if err := ctrl.userService.RemoveMember(currentSchoolID(c), memberID); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}
