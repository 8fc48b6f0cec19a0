package service

import (
	"time"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
)

type DashboardService struct {
	userRepo       *repository.UserRepository
	assessmentRepo *repository.AssessmentRepository
	submissionRepo *repository.SubmissionRepository
	studyRepo      *repository.StudySessionRepository
	tutorRepo      *repository.TutorRepository
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	assessmentRepo *repository.AssessmentRepository,
	submissionRepo *repository.SubmissionRepository,
	studyRepo *repository.StudySessionRepository,
	tutorRepo *repository.TutorRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:       userRepo,
		assessmentRepo: assessmentRepo,
		submissionRepo: submissionRepo,
		studyRepo:      studyRepo,
		tutorRepo:      tutorRepo,
	}
}

// StudentDashboard summarizes a student's open work and recent results.
type StudentDashboard struct {
	UpcomingAssessments []model.Assessment `json:"upcomingAssessments"`
	RecentSubmissions   []model.Submission `json:"recentSubmissions"`
	AverageScore        float64            `json:"averageScore"`
	CompletedCount      int64              `json:"completedCount"`
	StudyMinutesWeek    int64              `json:"studyMinutesThisWeek"`
}

func (s *DashboardService) StudentDashboard(studentID, schoolID uint) (*StudentDashboard, error) {
	published, _, err := s.assessmentRepo.ListBySchool(schoolID, true, 1, 50)
	if err != nil {
		return nil, err
	}

	subs, err := s.submissionRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}

	submitted := make(map[uint]bool, len(subs))
	for _, sub := range subs {
		submitted[sub.AssessmentID] = true
	}

	now := time.Now()
	var upcoming []model.Assessment
	for _, a := range published {
		if submitted[a.ID] {
			continue
		}
		if a.DueDate != nil && now.After(*a.DueDate) {
			continue
		}
		upcoming = append(upcoming, a)
		if len(upcoming) >= 10 {
			break
		}
	}

	recent := subs
	if len(recent) > 5 {
		recent = recent[:5]
	}

	avg, count, err := s.submissionRepo.StudentAverage(studentID)
	if err != nil {
		return nil, err
	}

	weekAgo := now.AddDate(0, 0, -7)
	minutes, err := s.studyRepo.TotalMinutes(studentID, weekAgo)
	if err != nil {
		return nil, err
	}

	return &StudentDashboard{
		UpcomingAssessments: upcoming,
		RecentSubmissions:   recent,
		AverageScore:        avg,
		CompletedCount:      count,
		StudyMinutesWeek:    minutes,
	}, nil
}

// TeacherDashboard summarizes a teacher's assessments and grading backlog.
type TeacherDashboard struct {
	AssessmentCount int64              `json:"assessmentCount"`
	PendingGrading  int64              `json:"pendingGrading"`
	RecentlyCreated []model.Assessment `json:"recentlyCreated"`
}

func (s *DashboardService) TeacherDashboard(teacherID uint) (*TeacherDashboard, error) {
	assessments, total, err := s.assessmentRepo.ListByTeacher(teacherID, 1, 5)
	if err != nil {
		return nil, err
	}

	pending, err := s.submissionRepo.CountPendingGrading(teacherID)
	if err != nil {
		return nil, err
	}

	return &TeacherDashboard{
		AssessmentCount: total,
		PendingGrading:  pending,
		RecentlyCreated: assessments,
	}, nil
}

// SchoolDashboard gives the school admin headline numbers for the last week.
type SchoolDashboard struct {
	StudentCount    int64 `json:"studentCount"`
	TeacherCount    int64 `json:"teacherCount"`
	AssessmentCount int64 `json:"assessmentCount"`
	ActiveLastWeek  int64 `json:"activeLastWeek"`
	SubmissionsWeek int64 `json:"submissionsLastWeek"`
	TutorMsgsWeek   int64 `json:"tutorMessagesLastWeek"`
}

func (s *DashboardService) SchoolDashboard(schoolID uint) (*SchoolDashboard, error) {
	weekAgo := time.Now().AddDate(0, 0, -7)

	students, err := s.userRepo.CountBySchool(schoolID, model.Student)
	if err != nil {
		return nil, err
	}
	teachers, err := s.userRepo.CountBySchool(schoolID, model.Teacher)
	if err != nil {
		return nil, err
	}
	assessments, err := s.assessmentRepo.CountBySchool(schoolID)
	if err != nil {
		return nil, err
	}
	active, err := s.userRepo.CountActiveSince(schoolID, weekAgo)
	if err != nil {
		return nil, err
	}
	submissions, err := s.submissionRepo.CountBySchoolSince(schoolID, weekAgo)
	if err != nil {
		return nil, err
	}
	tutorMsgs, err := s.tutorRepo.CountMessagesBySchoolSince(schoolID, weekAgo)
	if err != nil {
		return nil, err
	}

	return &SchoolDashboard{
		StudentCount:    students,
		TeacherCount:    teachers,
		AssessmentCount: assessments,
		ActiveLastWeek:  active,
		SubmissionsWeek: submissions,
		TutorMsgsWeek:   tutorMsgs,
	}, nil
}
