package service

import (
	"context"
	"errors"
	"testing"

	"career-smart-go/internal/model"
	"career-smart-go/pkg/database"
	"career-smart-go/pkg/token"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newUserFixture() (*fakeUserRepo, UserService) {
	userRepo := newFakeUserRepo()
	chatRepo := newFakeChatRepo()
	assessmentRepo := newFakeAssessmentRepo()
	resumeRepo := newFakeResumeRepo()
	jwtManager := token.NewJWTManager("test-secret", 2, 7)
	svc := NewUserService(userRepo, chatRepo, assessmentRepo, resumeRepo, jwtManager)
	return userRepo, svc
}

func TestRegisterAndLogin(t *testing.T) {
	userRepo, svc := newUserFixture()

	user, err := svc.Register("alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Fatalf("expected default role %q, got %q", model.RoleUser, user.Role)
	}
	if user.Password == "password123" {
		t.Fatal("password must be stored hashed")
	}

	access, refresh, err := svc.Login("alice", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty token pair")
	}

	stored, _ := userRepo.FindByUsername("alice")
	if stored.LastLogin == nil {
		t.Fatal("LastLogin should be recorded after login")
	}

	if _, _, err := svc.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, _, err := svc.Login("nobody", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	_, svc := newUserFixture()

	if _, err := svc.Register("alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Register("alice", "other@example.com", "password123"); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser for taken username, got %v", err)
	}
	if _, err := svc.Register("bob", "alice@example.com", "password123"); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser for taken email, got %v", err)
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	mr := miniredis.RunT(t)
	database.RDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	_, svc := newUserFixture()
	if _, err := svc.Register("alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	access, _, err := svc.Login("alice", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(access); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if !mr.Exists("blacklist:" + access) {
		t.Fatal("token should be present in the blacklist")
	}
	ttl := database.RDB.TTL(context.Background(), "blacklist:"+access).Val()
	if ttl <= 0 {
		t.Fatalf("blacklist entry should expire with the token, ttl=%v", ttl)
	}

	if err := svc.Logout("not-a-token"); err == nil {
		t.Fatal("Logout should reject an invalid token")
	}
}

func TestRefreshTokenIssuesNewPair(t *testing.T) {
	_, svc := newUserFixture()
	if _, err := svc.Register("alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, refresh, err := svc.Login("alice", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	newAccess, newRefresh, err := svc.RefreshToken(refresh)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Fatal("expected non-empty token pair")
	}

	if _, _, err := svc.RefreshToken("garbage"); err == nil {
		t.Fatal("RefreshToken should reject an invalid token")
	}
}

func TestGetDashboardCountsOwnDataOnly(t *testing.T) {
	userRepo := newFakeUserRepo()
	chatRepo := newFakeChatRepo()
	assessmentRepo := newFakeAssessmentRepo()
	resumeRepo := newFakeResumeRepo()
	svc := NewUserService(userRepo, chatRepo, assessmentRepo, resumeRepo, token.NewJWTManager("test-secret", 2, 7))

	chatRepo.CreateSessionWithMessages(&model.ChatSession{UserID: 1, Title: "a..."}, nil)
	chatRepo.CreateSessionWithMessages(&model.ChatSession{UserID: 2, Title: "b..."}, nil)
	assessmentRepo.Create(&model.CareerAssessment{UserID: 1})
	resumeRepo.Create(&model.Resume{UserID: 1, FileName: "cv.pdf"})
	resumeRepo.Create(&model.Resume{UserID: 1, FileName: "cv2.pdf"})

	stats, err := svc.GetDashboard(1)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if stats.Assessments != 1 || stats.ChatSessions != 1 || stats.Resumes != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestUpdateProfile(t *testing.T) {
	userRepo, svc := newUserFixture()
	svc.Register("alice", "alice@example.com", "password123")
	svc.Register("bob", "bob@example.com", "password123")

	// 与他人冲突的用户名/邮箱被拒绝
	if _, err := svc.UpdateProfile(1, "bob", "alice@example.com"); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser for taken username, got %v", err)
	}
	if _, err := svc.UpdateProfile(1, "alice", "bob@example.com"); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser for taken email, got %v", err)
	}

	// 保留自己现有的用户名/邮箱不算冲突
	updated, err := svc.UpdateProfile(1, "alice", "alice-new@example.com")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Email != "alice-new@example.com" {
		t.Fatalf("email not updated: %q", updated.Email)
	}
	stored, _ := userRepo.FindByID(1)
	if stored.Email != "alice-new@example.com" {
		t.Fatalf("email not persisted: %q", stored.Email)
	}

	if _, err := svc.UpdateProfile(42, "ghost", "ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
