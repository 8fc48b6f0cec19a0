package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/grading"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/logger"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/monitoring"
)

// attemptMarkerTTL bounds how long a started attempt keeps its start time.
// After expiry the submit still succeeds, it just cannot compute time spent.
const attemptMarkerTTL = 24 * time.Hour

type AttemptService struct {
	assessmentRepo *repository.AssessmentRepository
	submissionRepo *repository.SubmissionRepository
	rdb            *redis.Client
}

func NewAttemptService(assessmentRepo *repository.AssessmentRepository, submissionRepo *repository.SubmissionRepository, rdb *redis.Client) *AttemptService {
	return &AttemptService{assessmentRepo: assessmentRepo, submissionRepo: submissionRepo, rdb: rdb}
}

func attemptKey(assessmentID, studentID uint) string {
	return fmt.Sprintf("attempt:%d:%d", assessmentID, studentID)
}

type AttemptStatus struct {
	AssessmentID uint               `json:"assessmentId"`
	State        model.AttemptState `json:"state"`
	StartedAt    *time.Time         `json:"startedAt,omitempty"`
	Submission   *model.Submission  `json:"submission,omitempty"`
}

// StartAttempt marks the attempt in progress by writing a start marker to
// Redis. No database row is created until the student submits. Restarting an
// in-progress attempt keeps the original start time.
func (s *AttemptService) StartAttempt(ctx context.Context, assessmentID, schoolID, studentID uint) (*AttemptStatus, error) {
	assessment, err := s.assessmentRepo.GetByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil || assessment.SchoolID != schoolID {
		return nil, util.ErrAssessmentNotFound
	}
	if !assessment.IsPublished {
		return nil, util.ErrAssessmentUnpublished
	}
	if assessment.DueDate != nil && time.Now().After(*assessment.DueDate) {
		return nil, util.ErrPastDue
	}

	existing, err := s.submissionRepo.GetByAssessmentAndStudent(assessmentID, studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrAlreadySubmitted
	}

	now := time.Now()
	key := attemptKey(assessmentID, studentID)
	if err := s.rdb.SetNX(ctx, key, now.Unix(), attemptMarkerTTL).Err(); err != nil {
		return nil, err
	}

	startedAt, _ := s.startedAt(ctx, assessmentID, studentID)
	if startedAt == nil {
		startedAt = &now
	}

	return &AttemptStatus{
		AssessmentID: assessmentID,
		State:        model.AttemptInProgress,
		StartedAt:    startedAt,
	}, nil
}

func (s *AttemptService) startedAt(ctx context.Context, assessmentID, studentID uint) (*time.Time, error) {
	unix, err := s.rdb.Get(ctx, attemptKey(assessmentID, studentID)).Int64()
	if err != nil {
		return nil, err
	}
	t := time.Unix(unix, 0)
	return &t, nil
}

type AnswerInput struct {
	QuestionID       uint   `json:"question_id" binding:"required"`
	SelectedOptionID uint   `json:"selected_option_id"`
	Text             string `json:"text"`
}

type SubmitAttemptRequest struct {
	Answers []AnswerInput `json:"answers" binding:"required,dive"`
}

// staleOption records a selected option id that no longer belongs to its
// question, surfaced so SubmitAttempt can log it.
type staleOption struct {
	questionID uint
	optionID   uint
}

// gradeResponses auto-grades every authored question against the student's
// answers. It returns the response rows, the count of short answers awaiting
// manual grading, and any stale option references.
func gradeResponses(questions []model.Question, byQuestion map[uint]grading.Answer) ([]model.Response, int, []staleOption) {
	responses := make([]model.Response, 0, len(questions))
	pendingManual := 0
	var stale []staleOption
	for _, q := range questions {
		ans := byQuestion[q.ID]
		graded := grading.AutoGrade(q, q.Options, ans)
		if graded.OptionMissing {
			stale = append(stale, staleOption{questionID: q.ID, optionID: ans.SelectedOptionID})
		}
		resp := model.Response{
			QuestionID:       q.ID,
			SelectedOptionID: graded.SelectedOptionID,
			TextResponse:     graded.Text,
			IsCorrect:        graded.IsCorrect,
		}
		if graded.IsCorrect != nil {
			points := graded.PointsEarned
			resp.PointsEarned = &points
		} else if q.QuestionType == model.QuestionShortAnswer {
			pendingManual++
		}
		responses = append(responses, resp)
	}
	return responses, pendingManual, stale
}

type SubmitResult struct {
	Submission          *model.Submission  `json:"submission"`
	State               model.AttemptState `json:"state"`
	PendingManualGrades int                `json:"pendingManualGrades"`
}

// SubmitAttempt validates completeness, auto-grades objective questions,
// normalizes the score and persists everything atomically. Short-answer
// questions stay ungraded until a teacher reviews them.
func (s *AttemptService) SubmitAttempt(ctx context.Context, assessmentID, schoolID, studentID uint, req *SubmitAttemptRequest) (*SubmitResult, error) {
	assessment, err := s.assessmentRepo.GetByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil || assessment.SchoolID != schoolID {
		return nil, util.ErrAssessmentNotFound
	}
	if !assessment.IsPublished {
		return nil, util.ErrAssessmentUnpublished
	}
	if assessment.DueDate != nil && time.Now().After(*assessment.DueDate) {
		monitoring.SubmissionCounter.WithLabelValues("past_due").Inc()
		return nil, util.ErrPastDue
	}

	existing, err := s.submissionRepo.GetByAssessmentAndStudent(assessmentID, studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		monitoring.SubmissionCounter.WithLabelValues("duplicate").Inc()
		return nil, util.ErrAlreadySubmitted
	}

	answers := make([]grading.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, grading.Answer{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
			Text:             a.Text,
		})
	}

	// Completeness is checked server-side against the authored question set,
	// never trusted from the client.
	if missing := grading.Unanswered(assessment.Questions, answers); len(missing) > 0 {
		monitoring.SubmissionCounter.WithLabelValues("incomplete").Inc()
		return nil, fmt.Errorf("%w: %d unanswered", util.ErrIncompleteSubmission, len(missing))
	}

	byQuestion := make(map[uint]grading.Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	now := time.Now()
	sub := &model.Submission{
		AssessmentID: assessmentID,
		StudentID:    studentID,
		Completed:    true,
		SubmittedAt:  &now,
	}

	if startedAt, err := s.startedAt(ctx, assessmentID, studentID); err == nil && startedAt != nil {
		sub.TimeSpent = int(now.Sub(*startedAt).Seconds())
		if sub.TimeSpent < 0 {
			sub.TimeSpent = 0
		}
	}

	responses, pendingManual, stale := gradeResponses(assessment.Questions, byQuestion)
	for _, st := range stale {
		logger.Log.Warn("Submitted answer references an option the question no longer has",
			zap.Uint("assessmentID", assessmentID),
			zap.Uint("studentID", studentID),
			zap.Uint("questionID", st.questionID),
			zap.Uint("optionID", st.optionID))
	}
	sub.Responses = responses

	rawMax := grading.RawMax(assessment.Questions)
	rawTotal := grading.RawTotal(sub.Responses)
	sub.Score = grading.Normalize(rawTotal, rawMax, assessment.MaxScore)

	if pendingManual == 0 {
		sub.GradedAt = &now
	}

	if err := s.submissionRepo.CreateCompleted(sub); err != nil {
		monitoring.SubmissionCounter.WithLabelValues("error").Inc()
		return nil, err
	}

	s.rdb.Del(ctx, attemptKey(assessmentID, studentID))
	monitoring.SubmissionCounter.WithLabelValues("completed").Inc()

	return &SubmitResult{
		Submission:          sub,
		State:               sub.State(pendingManual),
		PendingManualGrades: pendingManual,
	}, nil
}

// GetStatus reports the lifecycle state of a student's attempt, checking the
// Redis start marker when no row exists yet.
func (s *AttemptService) GetStatus(ctx context.Context, assessmentID, schoolID, studentID uint) (*AttemptStatus, error) {
	assessment, err := s.assessmentRepo.GetByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil || assessment.SchoolID != schoolID {
		return nil, util.ErrAssessmentNotFound
	}

	sub, err := s.submissionRepo.GetByAssessmentAndStudent(assessmentID, studentID)
	if err != nil {
		return nil, err
	}

	if sub == nil {
		if startedAt, err := s.startedAt(ctx, assessmentID, studentID); err == nil && startedAt != nil {
			return &AttemptStatus{
				AssessmentID: assessmentID,
				State:        model.AttemptInProgress,
				StartedAt:    startedAt,
			}, nil
		}
		return &AttemptStatus{
			AssessmentID: assessmentID,
			State:        model.AttemptNotStarted,
		}, nil
	}

	return &AttemptStatus{
		AssessmentID: assessmentID,
		State:        sub.State(s.pendingManual(assessment, sub)),
		Submission:   sub,
	}, nil
}

func (s *AttemptService) pendingManual(assessment *model.Assessment, sub *model.Submission) int {
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

type AttemptResult struct {
	Submission *model.Submission  `json:"submission"`
	Assessment *model.Assessment  `json:"assessment"`
	State      model.AttemptState `json:"state"`
}

// GetResults returns the student's graded submission, with correct answers
// revealed only once grading is final.
func (s *AttemptService) GetResults(assessmentID, schoolID, studentID uint) (*AttemptResult, error) {
	assessment, err := s.assessmentRepo.GetByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil || assessment.SchoolID != schoolID {
		return nil, util.ErrAssessmentNotFound
	}

	sub, err := s.submissionRepo.GetByAssessmentAndStudent(assessmentID, studentID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, util.ErrSubmissionNotFound
	}

	state := sub.State(s.pendingManual(assessment, sub))
	if state != model.AttemptGraded {
		// Hide the answer key while grading is still open.
		for i := range assessment.Questions {
			for j := range assessment.Questions[i].Options {
				assessment.Questions[i].Options[j].IsCorrect = false
			}
		}
	}

	return &AttemptResult{
		Submission: sub,
		Assessment: assessment,
		State:      state,
	}, nil
}

func (s *AttemptService) ListStudentSubmissions(studentID uint) ([]model.Submission, error) {
	return s.submissionRepo.ListByStudent(studentID)
}
