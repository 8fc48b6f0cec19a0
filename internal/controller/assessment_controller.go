package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/service"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type AssessmentController struct {
	assessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{assessmentService: assessmentService}
}

// Create godoc
// @Summary Create an assessment
// @Description Authoring rules: choice questions need exactly one correct option, true/false exactly two options
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateAssessmentRequest true "Assessment with questions"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response
// @Router /api/teacher/assessments [post]
func (ctrl *AssessmentController) Create(c *gin.Context) {
	var req service.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	assessment, err := ctrl.assessmentService.Create(currentSchoolID(c), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, assessment)
}

// Update godoc
// @Summary Update an assessment
// @Description Question edits are rejected once any student has a completed submission
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param request body service.UpdateAssessmentRequest true "Fields to update"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 409 {object} util.Response
// @Router /api/teacher/assessments/{id} [put]
func (ctrl *AssessmentController) Update(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	var req service.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	assessment, err := ctrl.assessmentService.Update(id, currentSchoolID(c), currentUserID(c), currentRole(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, assessment)
}

func (ctrl *AssessmentController) Publish(c *gin.Context) {
	ctrl.setPublished(c, true)
}

func (ctrl *AssessmentController) Unpublish(c *gin.Context) {
	ctrl.setPublished(c, false)
}

func (ctrl *AssessmentController) setPublished(c *gin.Context, published bool) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	assessment, err := ctrl.assessmentService.SetPublished(id, currentSchoolID(c), currentUserID(c), currentRole(c), published)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, assessment)
}

func (ctrl *AssessmentController) Delete(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	if err := ctrl.assessmentService.Delete(id, currentSchoolID(c), currentUserID(c), currentRole(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

func (ctrl *AssessmentController) GetForTeacher(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	assessment, err := ctrl.assessmentService.GetForTeacher(id, currentSchoolID(c), currentUserID(c), currentRole(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, assessment)
}

func (ctrl *AssessmentController) ListForTeacher(c *gin.Context) {
	page, limit := pagination(c)
	assessments, total, err := ctrl.assessmentService.ListForTeacher(currentUserID(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Page(c, assessments, total, page, limit)
}

func (ctrl *AssessmentController) ListForSchool(c *gin.Context) {
	page, limit := pagination(c)
	assessments, total, err := ctrl.assessmentService.ListForSchool(currentSchoolID(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Page(c, assessments, total, page, limit)
}

// ListForStudent godoc
// @Summary List published assessments
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/student/assessments [get]
func (ctrl *AssessmentController) ListForStudent(c *gin.Context) {
	page, limit := pagination(c)
	assessments, total, err := ctrl.assessmentService.ListForStudent(currentSchoolID(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Page(c, assessments, total, page, limit)
}

// GetForStudent godoc
// @Summary Get a published assessment for taking
// @Description Correct-answer flags are stripped from the options
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/student/assessments/{id} [get]
func (ctrl *AssessmentController) GetForStudent(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	assessment, err := ctrl.assessmentService.GetForStudent(id, currentSchoolID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, assessment)
}
