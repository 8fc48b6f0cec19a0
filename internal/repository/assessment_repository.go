package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
)

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) Create(assessment *model.Assessment) error {
	return r.db.Create(assessment).Error
}

// GetByID loads the assessment with questions and options ordered for
// display.
func (r *AssessmentRepository) GetByID(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.`order`")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.`order`")
		}).
		First(&assessment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &assessment, err
}

func (r *AssessmentRepository) ListBySchool(schoolID uint, publishedOnly bool, page, pageSize int) ([]model.Assessment, int64, error) {
	var assessments []model.Assessment
	var total int64

	query := r.db.Model(&model.Assessment{}).Where("school_id = ?", schoolID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&assessments).Error
	return assessments, total, err
}

func (r *AssessmentRepository) ListByTeacher(teacherID uint, page, pageSize int) ([]model.Assessment, int64, error) {
	var assessments []model.Assessment
	var total int64

	query := r.db.Model(&model.Assessment{}).Where("teacher_id = ?", teacherID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&assessments).Error
	return assessments, total, err
}

func (r *AssessmentRepository) Update(assessment *model.Assessment) error {
	return r.db.Save(assessment).Error
}

func (r *AssessmentRepository) SetPublished(id uint, published bool) error {
	return r.db.Model(&model.Assessment{}).Where("id = ?", id).Update("is_published", published).Error
}

// ReplaceQuestions swaps the full question set in one transaction. Callers
// must first verify the assessment is not locked by completed submissions.
func (r *AssessmentRepository) ReplaceQuestions(assessmentID uint, questions []model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).
			Where("assessment_id = ?", assessmentID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).
				Delete(&model.QuestionOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("assessment_id = ?", assessmentID).
				Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}

		for i := range questions {
			questions[i].ID = 0
			questions[i].AssessmentID = assessmentID
			for j := range questions[i].Options {
				questions[i].Options[j].ID = 0
			}
		}

		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AssessmentRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).
			Where("assessment_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).
				Delete(&model.QuestionOption{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("assessment_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assessment{}, id).Error
	})
}

// HasCompletedSubmissions reports whether any student has finished this
// assessment, which locks its questions against edits.
func (r *AssessmentRepository) HasCompletedSubmissions(assessmentID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Submission{}).
		Where("assessment_id = ? AND completed = ?", assessmentID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *AssessmentRepository) CountBySchool(schoolID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Assessment{}).Where("school_id = ?", schoolID).Count(&count).Error
	return count, err
}
