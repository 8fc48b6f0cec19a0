package service

import (
	"time"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/grading"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type GradingService struct {
	assessmentRepo *repository.AssessmentRepository
	submissionRepo *repository.SubmissionRepository
}

func NewGradingService(assessmentRepo *repository.AssessmentRepository, submissionRepo *repository.SubmissionRepository) *GradingService {
	return &GradingService{assessmentRepo: assessmentRepo, submissionRepo: submissionRepo}
}

// SubmissionOverview is a grading-queue row for teachers.
type SubmissionOverview struct {
	Submission    model.Submission   `json:"submission"`
	State         model.AttemptState `json:"state"`
	PendingManual int                `json:"pendingManual"`
}

func (s *GradingService) getAssessment(assessmentID, schoolID, userID uint, role model.UserRole) (*model.Assessment, error) {
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
	return assessment, nil
}

func pendingManualCount(assessment *model.Assessment, sub *model.Submission) int {
	shortAnswer := make(map[uint]bool)
	for _, q := range assessment.Questions {
		if q.QuestionType == model.QuestionShortAnswer {
			shortAnswer[q.ID] = true
		}
	}
	pending := 0
	for _, r := range sub.Responses {
		if shortAnswer[r.QuestionID] && r.PointsEarned == nil {
			pending++
		}
	}
	return pending
}

// ListSubmissions returns every submission for an assessment with its
// derived state, for the teacher's grading queue.
func (s *GradingService) ListSubmissions(assessmentID, schoolID, userID uint, role model.UserRole) ([]SubmissionOverview, error) {
	assessment, err := s.getAssessment(assessmentID, schoolID, userID, role)
	if err != nil {
		return nil, err
	}

	subs, err := s.submissionRepo.ListByAssessment(assessmentID)
	if err != nil {
		return nil, err
	}

	overviews := make([]SubmissionOverview, 0, len(subs))
	for i := range subs {
		pending := pendingManualCount(assessment, &subs[i])
		overviews = append(overviews, SubmissionOverview{
			Submission:    subs[i],
			State:         subs[i].State(pending),
			PendingManual: pending,
		})
	}
	return overviews, nil
}

// GetSubmission returns one submission with the full assessment for review,
// answer key included.
func (s *GradingService) GetSubmission(assessmentID, submissionID, schoolID, userID uint, role model.UserRole) (*model.Assessment, *model.Submission, error) {
	assessment, err := s.getAssessment(assessmentID, schoolID, userID, role)
	if err != nil {
		return nil, nil, err
	}

	sub, err := s.submissionRepo.GetByID(submissionID)
	if err != nil {
		return nil, nil, err
	}
	if sub == nil || sub.AssessmentID != assessmentID {
		return nil, nil, util.ErrSubmissionNotFound
	}
	return assessment, sub, nil
}

type GradeSubmissionRequest struct {
	// Grades maps question ID to awarded points. Points are clamped to
	// [0, question.points].
	Grades   map[uint]float64 `json:"grades" binding:"required"`
	Feedback string           `json:"feedback" binding:"omitempty,max=4000"`
}

// GradeSubmission applies manual grades to short-answer responses and
// recomputes the normalized score. Re-grading an already graded response is
// allowed and overwrites the previous points.
func (s *GradingService) GradeSubmission(assessmentID, submissionID, schoolID, userID uint, role model.UserRole, req *GradeSubmissionRequest) (*SubmissionOverview, error) {
	assessment, sub, err := s.GetSubmission(assessmentID, submissionID, schoolID, userID, role)
	if err != nil {
		return nil, err
	}

	questions := make(map[uint]model.Question, len(assessment.Questions))
	for _, q := range assessment.Questions {
		questions[q.ID] = q
	}

	var updated []model.Response
	for i := range sub.Responses {
		r := &sub.Responses[i]
		points, ok := req.Grades[r.QuestionID]
		if !ok {
			continue
		}
		q, known := questions[r.QuestionID]
		if !known || q.QuestionType != model.QuestionShortAnswer {
			// Objective questions are auto-graded; manual points only apply
			// to short answers.
			continue
		}

		earned, isCorrect := grading.ManualGrade(q, points)
		r.PointsEarned = &earned
		correct := isCorrect
		r.IsCorrect = &correct
		updated = append(updated, *r)
	}

	rawMax := grading.RawMax(assessment.Questions)
	rawTotal := grading.RawTotal(sub.Responses)
	score := grading.Normalize(rawTotal, rawMax, assessment.MaxScore)

	feedback := req.Feedback
	if feedback == "" {
		feedback = sub.Feedback
	}

	now := time.Now()
	if err := s.submissionRepo.SaveGrades(sub.ID, updated, score, feedback, now); err != nil {
		return nil, err
	}

	sub.Score = score
	sub.Feedback = feedback
	sub.GradedAt = &now

	pending := pendingManualCount(assessment, sub)
	return &SubmissionOverview{
		Submission:    *sub,
		State:         sub.State(pending),
		PendingManual: pending,
	}, nil
}
