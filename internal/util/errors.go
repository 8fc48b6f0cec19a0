package util

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrSchoolNotFound        = errors.New("school not found")
	ErrInvalidSchoolCode     = errors.New("invalid school code")
	ErrInvitationNotUsable   = errors.New("invitation expired or already used")
	ErrInvitationEmail       = errors.New("invitation was issued for a different email")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrAssessmentNotFound    = errors.New("assessment not found")
	ErrInvalidQuestions      = errors.New("invalid question set")
	ErrAssessmentUnpublished = errors.New("assessment not published")
	ErrAssessmentLocked      = errors.New("assessment has completed submissions and can no longer be edited")
	ErrAlreadySubmitted      = errors.New("assessment already submitted")
	ErrIncompleteSubmission  = errors.New("not every question has been answered")
	ErrSubmissionNotFound    = errors.New("submission not found")
	ErrPastDue               = errors.New("assessment is past its due date")
	ErrNoActiveAPIKey        = errors.New("no AI key configured for this school")
	ErrSessionNotFound       = errors.New("tutor session not found")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrNoOpenStudySession    = errors.New("no open study session")
)
