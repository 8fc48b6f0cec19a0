package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

func TestHandleServiceErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "authoring violation is a client error",
			err:  fmt.Errorf("%w: question 1: exactly one option must be marked correct, got 0", util.ErrInvalidQuestions),
			want: http.StatusBadRequest,
		},
		{
			name: "bad credentials",
			err:  util.ErrInvalidCredentials,
			want: http.StatusUnauthorized,
		},
		{
			name: "duplicate submission",
			err:  util.ErrAlreadySubmitted,
			want: http.StatusConflict,
		},
		{
			name: "missing assessment",
			err:  util.ErrAssessmentNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "tenancy violation",
			err:  util.ErrPermissionDenied,
			want: http.StatusForbidden,
		},
		{
			name: "incomplete submission with detail",
			err:  fmt.Errorf("%w: 3 unanswered", util.ErrIncompleteSubmission),
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handleServiceError(c, tt.err)

			if w.Code != tt.want {
				t.Errorf("handleServiceError(%v) status = %d, want %d", tt.err, w.Code, tt.want)
			}
		})
	}
}
