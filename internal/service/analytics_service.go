package service

import (
	"time"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type AnalyticsService struct {
	userRepo       *repository.UserRepository
	assessmentRepo *repository.AssessmentRepository
	submissionRepo *repository.SubmissionRepository
	studyRepo      *repository.StudySessionRepository
	tutorRepo      *repository.TutorRepository
}

func NewAnalyticsService(
	userRepo *repository.UserRepository,
	assessmentRepo *repository.AssessmentRepository,
	submissionRepo *repository.SubmissionRepository,
	studyRepo *repository.StudySessionRepository,
	tutorRepo *repository.TutorRepository,
) *AnalyticsService {
	return &AnalyticsService{
		userRepo:       userRepo,
		assessmentRepo: assessmentRepo,
		submissionRepo: submissionRepo,
		studyRepo:      studyRepo,
		tutorRepo:      tutorRepo,
	}
}

// Study sessions

type StartStudySessionRequest struct {
	Topic string `json:"topic" binding:"omitempty,max=100"`
}

// StartStudySession opens a timed session, closing any session the user left
// open first.
func (s *AnalyticsService) StartStudySession(userID, schoolID uint, req *StartStudySessionRequest) (*model.StudySession, error) {
	if open, err := s.studyRepo.GetOpenByUser(userID); err != nil {
		return nil, err
	} else if open != nil {
		s.closeSession(open)
	}

	session := &model.StudySession{
		UserID:    userID,
		SchoolID:  schoolID,
		Topic:     req.Topic,
		StartTime: time.Now(),
	}
	if err := s.studyRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AnalyticsService) EndStudySession(userID uint) (*model.StudySession, error) {
	open, err := s.studyRepo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, util.ErrNoOpenStudySession
	}
	if err := s.closeSession(open); err != nil {
		return nil, err
	}
	return open, nil
}

func (s *AnalyticsService) closeSession(session *model.StudySession) error {
	now := time.Now()
	session.EndTime = &now
	session.Duration = int(now.Sub(session.StartTime).Minutes())
	if session.Duration < 0 {
		session.Duration = 0
	}
	return s.studyRepo.Update(session)
}

// Student-level reporting

type StudentPerformance struct {
	StudentID         uint    `json:"studentId"`
	CompletedCount    int64   `json:"completedCount"`
	AverageScore      float64 `json:"averageScore"`
	StudyMinutes      int64   `json:"studyMinutes"`
	RecentSubmissions []model.Submission `json:"recentSubmissions"`
}

func (s *AnalyticsService) StudentPerformance(studentID uint, since time.Time) (*StudentPerformance, error) {
	avg, count, err := s.submissionRepo.StudentAverage(studentID)
	if err != nil {
		return nil, err
	}

	minutes, err := s.studyRepo.TotalMinutes(studentID, since)
	if err != nil {
		return nil, err
	}

	subs, err := s.submissionRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	if len(subs) > 10 {
		subs = subs[:10]
	}

	return &StudentPerformance{
		StudentID:         studentID,
		CompletedCount:    count,
		AverageScore:      avg,
		StudyMinutes:      minutes,
		RecentSubmissions: subs,
	}, nil
}

// Assessment-level reporting

type AssessmentReport struct {
	Assessment       *model.Assessment `json:"assessment"`
	SubmissionCount  int64             `json:"submissionCount"`
	AverageScore     float64           `json:"averageScore"`
	HighestScore     int               `json:"highestScore"`
	LowestScore      int               `json:"lowestScore"`
	AverageTimeSpent float64           `json:"averageTimeSpentSeconds"`
}

func (s *AnalyticsService) AssessmentReport(assessmentID, schoolID, userID uint, role model.UserRole) (*AssessmentReport, error) {
	assessment, err := s.assessmentRepo.GetByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil || assessment.SchoolID != schoolID {
		return nil, util.ErrAssessmentNotFound
	}
	if role == model.Teacher && assessment.TeacherID != userID {
		return nil, util.ErrPermissionDenied
	}

	stats, err := s.submissionRepo.StatsByAssessment(assessmentID)
	if err != nil {
		return nil, err
	}

	return &AssessmentReport{
		Assessment:       assessment,
		SubmissionCount:  stats.SubmissionCount,
		AverageScore:     stats.AverageScore,
		HighestScore:     stats.HighestScore,
		LowestScore:      stats.LowestScore,
		AverageTimeSpent: stats.AverageTimeSpent,
	}, nil
}

// School-level reporting

type SchoolReport struct {
	StudentCount    int64 `json:"studentCount"`
	TeacherCount    int64 `json:"teacherCount"`
	AssessmentCount int64 `json:"assessmentCount"`
	ActiveLastWeek  int64 `json:"activeLastWeek"`
	SubmissionsWeek int64 `json:"submissionsLastWeek"`
	TutorMsgsWeek   int64 `json:"tutorMessagesLastWeek"`
	StudyMinsWeek   int64 `json:"studyMinutesLastWeek"`
}

func (s *AnalyticsService) SchoolReport(schoolID uint) (*SchoolReport, error) {
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
	studyMins, err := s.studyRepo.TotalMinutesBySchool(schoolID, weekAgo)
	if err != nil {
		return nil, err
	}

	return &SchoolReport{
		StudentCount:    students,
		TeacherCount:    teachers,
		AssessmentCount: assessments,
		ActiveLastWeek:  active,
		SubmissionsWeek: submissions,
		TutorMsgsWeek:   tutorMsgs,
		StudyMinsWeek:   studyMins,
	}, nil
}
