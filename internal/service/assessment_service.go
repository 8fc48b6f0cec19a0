package service

import (
	"fmt"
	"time"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type AssessmentService struct {
	assessmentRepo *repository.AssessmentRepository
	submissionRepo *repository.SubmissionRepository
}

func NewAssessmentService(assessmentRepo *repository.AssessmentRepository, submissionRepo *repository.SubmissionRepository) *AssessmentService {
	return &AssessmentService{assessmentRepo: assessmentRepo, submissionRepo: submissionRepo}
}

type QuestionOptionInput struct {
	Text      string `json:"text" binding:"required,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionInput struct {
	QuestionType string                `json:"question_type" binding:"required,oneof=multiple_choice true_false short_answer"`
	Prompt       string                `json:"prompt" binding:"required"`
	Points       float64               `json:"points" binding:"required,gt=0"`
	Options      []QuestionOptionInput `json:"options" binding:"omitempty,dive"`
}

type CreateAssessmentRequest struct {
	Title       string          `json:"title" binding:"required,min=2,max=255"`
	Description string          `json:"description" binding:"omitempty"`
	Subject     string          `json:"subject" binding:"omitempty,max=100"`
	DueDate     *time.Time      `json:"due_date"`
	MaxScore    int             `json:"max_score" binding:"omitempty,gt=0"`
	Questions   []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

type UpdateAssessmentRequest struct {
	Title       string          `json:"title" binding:"omitempty,min=2,max=255"`
	Description *string         `json:"description"`
	Subject     string          `json:"subject" binding:"omitempty,max=100"`
	DueDate     *time.Time      `json:"due_date"`
	MaxScore    int             `json:"max_score" binding:"omitempty,gt=0"`
	Questions   []QuestionInput `json:"questions" binding:"omitempty,min=1,dive"`
}

// validateQuestions enforces the authoring rules: choice questions carry
// exactly one correct option, true/false exactly two options, short answers
// none. Violations wrap ErrInvalidQuestions so the transport layer can
// answer with a client error.
func validateQuestions(questions []QuestionInput) error {
	for i, q := range questions {
		switch q.QuestionType {
		case model.QuestionMultipleChoice, model.QuestionTrueFalse:
			if q.QuestionType == model.QuestionTrueFalse && len(q.Options) != 2 {
				return fmt.Errorf("%w: question %d: true/false questions need exactly 2 options, got %d", util.ErrInvalidQuestions, i+1, len(q.Options))
			}
			if q.QuestionType == model.QuestionMultipleChoice && len(q.Options) < 2 {
				return fmt.Errorf("%w: question %d: multiple choice questions need at least 2 options", util.ErrInvalidQuestions, i+1)
			}
			correct := 0
			for _, o := range q.Options {
				if o.IsCorrect {
					correct++
				}
			}
			if correct != 1 {
				return fmt.Errorf("%w: question %d: exactly one option must be marked correct, got %d", util.ErrInvalidQuestions, i+1, correct)
			}
		case model.QuestionShortAnswer:
			if len(q.Options) != 0 {
				return fmt.Errorf("%w: question %d: short answer questions cannot have options", util.ErrInvalidQuestions, i+1)
			}
		}
	}
	return nil
}

func buildQuestions(inputs []QuestionInput) []model.Question {
	questions := make([]model.Question, 0, len(inputs))
	for i, in := range inputs {
		q := model.Question{
			QuestionType: in.QuestionType,
			Prompt:       in.Prompt,
			Points:       in.Points,
			Order:        i,
		}
		for j, o := range in.Options {
			q.Options = append(q.Options, model.QuestionOption{
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
				Order:     j,
			})
		}
		questions = append(questions, q)
	}
	return questions
}

func (s *AssessmentService) Create(schoolID, teacherID uint, req *CreateAssessmentRequest) (*model.Assessment, error) {
	if err := validateQuestions(req.Questions); err != nil {
		return nil, err
	}

	maxScore := req.MaxScore
	if maxScore == 0 {
		maxScore = 100
	}

	assessment := &model.Assessment{
		SchoolID:    schoolID,
		TeacherID:   teacherID,
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		DueDate:     req.DueDate,
		MaxScore:    maxScore,
		Questions:   buildQuestions(req.Questions),
	}
	if err := s.assessmentRepo.Create(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// getOwned loads the assessment and checks both tenancy and teacher
// ownership. School admins may manage any assessment in their school.
func (s *AssessmentService) getOwned(assessmentID, schoolID, userID uint, role model.UserRole) (*model.Assessment, error) {
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

func (s *AssessmentService) Update(assessmentID, schoolID, userID uint, role model.UserRole, req *UpdateAssessmentRequest) (*model.Assessment, error) {
	assessment, err := s.getOwned(assessmentID, schoolID, userID, role)
	if err != nil {
		return nil, err
	}

	if req.Questions != nil {
		locked, err := s.assessmentRepo.HasCompletedSubmissions(assessmentID)
		if err != nil {
			return nil, err
		}
		if locked {
			return nil, util.ErrAssessmentLocked
		}
		if err := validateQuestions(req.Questions); err != nil {
			return nil, err
		}
		if err := s.assessmentRepo.ReplaceQuestions(assessmentID, buildQuestions(req.Questions)); err != nil {
			return nil, err
		}
	}

	if req.Title != "" {
		assessment.Title = req.Title
	}
	if req.Description != nil {
		assessment.Description = *req.Description
	}
	if req.Subject != "" {
		assessment.Subject = req.Subject
	}
	if req.DueDate != nil {
		assessment.DueDate = req.DueDate
	}
	if req.MaxScore > 0 {
		assessment.MaxScore = req.MaxScore
	}

	assessment.Questions = nil
	if err := s.assessmentRepo.Update(assessment); err != nil {
		return nil, err
	}

	return s.assessmentRepo.GetByID(assessmentID)
}

func (s *AssessmentService) SetPublished(assessmentID, schoolID, userID uint, role model.UserRole, published bool) (*model.Assessment, error) {
	assessment, err := s.getOwned(assessmentID, schoolID, userID, role)
	if err != nil {
		return nil, err
	}

	if published && !assessment.IsPublished {
		now := time.Now()
		assessment.IsPublished = true
		assessment.PublishedAt = &now
		assessment.Questions = nil
		if err := s.assessmentRepo.Update(assessment); err != nil {
			return nil, err
		}
	} else if !published && assessment.IsPublished {
		// Unpublishing is blocked once someone has submitted.
		locked, err := s.assessmentRepo.HasCompletedSubmissions(assessmentID)
		if err != nil {
			return nil, err
		}
		if locked {
			return nil, util.ErrAssessmentLocked
		}
		if err := s.assessmentRepo.SetPublished(assessmentID, false); err != nil {
			return nil, err
		}
	}

	return s.assessmentRepo.GetByID(assessmentID)
}

func (s *AssessmentService) Delete(assessmentID, schoolID, userID uint, role model.UserRole) error {
	if _, err := s.getOwned(assessmentID, schoolID, userID, role); err != nil {
		return err
	}

	locked, err := s.assessmentRepo.HasCompletedSubmissions(assessmentID)
	if err != nil {
		return err
	}
	if locked {
		return util.ErrAssessmentLocked
	}

	return s.assessmentRepo.Delete(assessmentID)
}

func (s *AssessmentService) GetForTeacher(assessmentID, schoolID, userID uint, role model.UserRole) (*model.Assessment, error) {
	return s.getOwned(assessmentID, schoolID, userID, role)
}

// GetForStudent returns a published assessment with the correct-answer flags
// stripped.
func (s *AssessmentService) GetForStudent(assessmentID, schoolID uint) (*model.Assessment, error) {
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

	for i := range assessment.Questions {
		for j := range assessment.Questions[i].Options {
			assessment.Questions[i].Options[j].IsCorrect = false
		}
	}
	return assessment, nil
}

func (s *AssessmentService) ListForStudent(schoolID uint, page, pageSize int) ([]model.Assessment, int64, error) {
	return s.assessmentRepo.ListBySchool(schoolID, true, page, pageSize)
}

func (s *AssessmentService) ListForTeacher(teacherID uint, page, pageSize int) ([]model.Assessment, int64, error) {
	return s.assessmentRepo.ListByTeacher(teacherID, page, pageSize)
}

func (s *AssessmentService) ListForSchool(schoolID uint, page, pageSize int) ([]model.Assessment, int64, error) {
	return s.assessmentRepo.ListBySchool(schoolID, false, page, pageSize)
}
