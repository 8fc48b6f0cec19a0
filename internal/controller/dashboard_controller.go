package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/service"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type DashboardController struct {
	dashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Student godoc
// @Summary Student dashboard
// @Description Upcoming assessments, recent results and weekly study time
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.StudentDashboard}
// @Router /api/student/dashboard [get]
func (ctrl *DashboardController) Student(c *gin.Context) {
	dashboard, err := ctrl.dashboardService.StudentDashboard(currentUserID(c), currentSchoolID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, dashboard)
}

// Teacher godoc
// @Summary Teacher dashboard
// @Description Assessment counts and the manual-grading backlog
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.TeacherDashboard}
// @Router /api/teacher/dashboard [get]
func (ctrl *DashboardController) Teacher(c *gin.Context) {
	dashboard, err := ctrl.dashboardService.TeacherDashboard(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, dashboard)
}

// School godoc
// @Summary School admin dashboard
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.SchoolDashboard}
// @Router /api/school/dashboard [get]
func (ctrl *DashboardController) School(c *gin.Context) {
	dashboard, err := ctrl.dashboardService.SchoolDashboard(currentSchoolID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, dashboard)
}
