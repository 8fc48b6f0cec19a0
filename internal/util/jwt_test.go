package util

import (
	"testing"
	"time"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser() *model.User {
	schoolID := uint(42)
	u := &model.User{
		Name:     "Jordan",
		Email:    "jordan@example.org",
		Role:     model.Teacher,
		SchoolID: &schoolID,
	}
	u.ID = 7
	return u
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Role != model.Teacher {
		t.Errorf("Role = %s, want teacher", claims.Role)
	}
	if claims.SchoolID != 42 {
		t.Errorf("SchoolID = %d, want 42", claims.SchoolID)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "another-secret-another-secret-12"); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, testSecret); err == nil {
		t.Fatal("expected parse failure for expired token")
	}
}

func TestJWTPlatformAdminHasNoSchool(t *testing.T) {
	admin := &model.User{Name: "Root", Email: "root@example.org", Role: model.Admin}
	admin.ID = 1

	token, err := GenerateJWT(admin, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.SchoolID != 0 {
		t.Errorf("SchoolID = %d, want 0", claims.SchoolID)
	}
}
