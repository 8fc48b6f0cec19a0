package controller

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/service"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type AnalyticsController struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// StartStudySession godoc
// @Summary Start a timed study session
// @Tags analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.StartStudySessionRequest true "Topic"
// @Success 201 {object} util.Response{data=model.StudySession}
// @Router /api/student/study-sessions/start [post]
func (ctrl *AnalyticsController) StartStudySession(c *gin.Context) {
	var req service.StartStudySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	session, err := ctrl.analyticsService.StartStudySession(currentUserID(c), currentSchoolID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, session)
}

func (ctrl *AnalyticsController) EndStudySession(c *gin.Context) {
	session, err := ctrl.analyticsService.EndStudySession(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, session)
}

// sinceParam reads an optional days query parameter, defaulting to 30.
func sinceParam(c *gin.Context) time.Time {
	days := util.MustParseUint(c.DefaultQuery("days", "30"))
	if days == 0 || days > 365 {
		days = 30
	}
	return time.Now().AddDate(0, 0, -int(days))
}

// MyPerformance godoc
// @Summary Student's own performance summary
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param days query int false "Reporting window in days (default 30)"
// @Success 200 {object} util.Response{data=service.StudentPerformance}
// @Router /api/student/performance [get]
func (ctrl *AnalyticsController) MyPerformance(c *gin.Context) {
	perf, err := ctrl.analyticsService.StudentPerformance(currentUserID(c), sinceParam(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, perf)
}

// StudentPerformance reports on one student, for teachers and school admins.
func (ctrl *AnalyticsController) StudentPerformance(c *gin.Context) {
	studentID := util.MustParseUint(c.Param("id"))
	if studentID == 0 {
		util.BadRequest(c, "invalid student id")
		return
	}

	perf, err := ctrl.analyticsService.StudentPerformance(studentID, sinceParam(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, perf)
}

// AssessmentReport godoc
// @Summary Score distribution for an assessment
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=service.AssessmentReport}
// @Router /api/teacher/assessments/{id}/report [get]
func (ctrl *AnalyticsController) AssessmentReport(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	report, err := ctrl.analyticsService.AssessmentReport(id, currentSchoolID(c), currentUserID(c), currentRole(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, report)
}

// SchoolReport godoc
// @Summary School-wide activity report
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.SchoolReport}
// @Router /api/school/report [get]
func (ctrl *AnalyticsController) SchoolReport(c *gin.Context) {
	report, err := ctrl.analyticsService.SchoolReport(currentSchoolID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, report)
}
