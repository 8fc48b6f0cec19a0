package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) GetByID(id uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.Preload("Responses").First(&sub, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sub, err
}

func (r *SubmissionRepository) GetByAssessmentAndStudent(assessmentID, studentID uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.Preload("Responses").
		Where("assessment_id = ? AND student_id = ?", assessmentID, studentID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sub, err
}

// CreateCompleted writes a submission and its responses atomically. The
// unique index on (assessment_id, student_id) makes a concurrent duplicate
// submit fail the transaction rather than produce two rows.
func (r *SubmissionRepository) CreateCompleted(sub *model.Submission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(sub).Error
	})
}

// SaveGrades applies manual grades and the recomputed score in one
// transaction.
func (r *SubmissionRepository) SaveGrades(subID uint, responses []model.Response, score int, feedback string, gradedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range responses {
			if err := tx.Model(&model.Response{}).
				Where("id = ? AND submission_id = ?", responses[i].ID, subID).
				Updates(map[string]interface{}{
					"is_correct":    responses[i].IsCorrect,
					"points_earned": responses[i].PointsEarned,
				}).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.Submission{}).
			Where("id = ?", subID).
			Updates(map[string]interface{}{
				"score":     score,
				"feedback":  feedback,
				"graded_at": gradedAt,
			}).Error
	})
}

func (r *SubmissionRepository) ListByAssessment(assessmentID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.db.Preload("Responses").
		Where("assessment_id = ?", assessmentID).
		Order("submitted_at").
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) ListByStudent(studentID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.db.Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&subs).Error
	return subs, err
}

// AssessmentStats aggregates completed submissions for one assessment.
type AssessmentStats struct {
	SubmissionCount  int64
	AverageScore     float64
	HighestScore     int
	LowestScore      int
	AverageTimeSpent float64 // seconds
}

func (r *SubmissionRepository) StatsByAssessment(assessmentID uint) (*AssessmentStats, error) {
	var stats AssessmentStats

	row := r.db.Model(&model.Submission{}).
		Select("COUNT(*), COALESCE(AVG(score), 0), COALESCE(MAX(score), 0), COALESCE(MIN(score), 0), COALESCE(AVG(time_spent), 0)").
		Where("assessment_id = ? AND completed = ?", assessmentID, true).
		Row()
	err := row.Scan(&stats.SubmissionCount, &stats.AverageScore, &stats.HighestScore, &stats.LowestScore, &stats.AverageTimeSpent)
	return &stats, err
}

// StudentAverage is the mean normalized score across a student's completed
// submissions.
func (r *SubmissionRepository) StudentAverage(studentID uint) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.Model(&model.Submission{}).
		Select("COALESCE(AVG(score), 0) AS avg, COUNT(*) AS count").
		Where("student_id = ? AND completed = ?", studentID, true).
		Scan(&result).Error
	return result.Avg, result.Count, err
}

// CountPendingGrading counts completed submissions that still have ungraded
// short-answer responses, scoped to one teacher's assessments.
func (r *SubmissionRepository) CountPendingGrading(teacherID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Submission{}).
		Joins("JOIN assessments ON assessments.id = submissions.assessment_id").
		Where("assessments.teacher_id = ? AND submissions.completed = ?", teacherID, true).
		Where("EXISTS (SELECT 1 FROM responses JOIN questions ON questions.id = responses.question_id "+
			"WHERE responses.submission_id = submissions.id "+
			"AND questions.question_type = ? AND responses.points_earned IS NULL)", model.QuestionShortAnswer).
		Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) CountBySchoolSince(schoolID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Submission{}).
		Joins("JOIN assessments ON assessments.id = submissions.assessment_id").
		Where("assessments.school_id = ? AND submissions.submitted_at >= ?", schoolID, since).
		Count(&count).Error
	return count, err
}
