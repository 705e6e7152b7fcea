package service

import (
	"errors"
	"strings"
	"testing"

	"career-smart-go/internal/model"
)

func TestSendMessageCreatesSessionLazily(t *testing.T) {
	chatRepo := newFakeChatRepo()
	svc := NewChatService(chatRepo, &fixedAdvisor{reply: "canned reply"})

	sessionID, response, err := svc.SendMessage(7, "How do I become a data scientist?", 0)
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if sessionID == 0 {
		t.Fatal("expected a new session ID, got 0")
	}
	if response != "canned reply" {
		t.Fatalf("unexpected response: %q", response)
	}

	if len(chatRepo.sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(chatRepo.sessions))
	}
	msgs, _ := chatRepo.FindMessagesBySession(sessionID)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Sender != model.SenderUser || msgs[0].Message != "How do I become a data scientist?" {
		t.Fatalf("unexpected first message: %+v", msgs[0])
	}
	if msgs[1].Sender != model.SenderAI || msgs[1].Message != "canned reply" {
		t.Fatalf("unexpected second message: %+v", msgs[1])
	}
}

func TestSendMessageAppendsToOwnSession(t *testing.T) {
	chatRepo := newFakeChatRepo()
	svc := NewChatService(chatRepo, &fixedAdvisor{reply: "ok"})

	sessionID, _, err := svc.SendMessage(7, "first", 0)
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	gotID, _, err := svc.SendMessage(7, "second", sessionID)
	if err != nil {
		t.Fatalf("SendMessage append: %v", err)
	}
	if gotID != sessionID {
		t.Fatalf("expected session %d, got %d", sessionID, gotID)
	}
	if len(chatRepo.sessions) != 1 {
		t.Fatalf("append must not create a session, got %d", len(chatRepo.sessions))
	}
	msgs, _ := chatRepo.FindMessagesBySession(sessionID)
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
}

func TestSendMessageRejectsForeignSession(t *testing.T) {
	chatRepo := newFakeChatRepo()
	svc := NewChatService(chatRepo, &fixedAdvisor{reply: "ok"})

	sessionID, _, err := svc.SendMessage(7, "mine", 0)
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if _, _, err := svc.SendMessage(8, "not mine", sessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	msgs, _ := chatRepo.FindMessagesBySession(sessionID)
	if len(msgs) != 2 {
		t.Fatalf("foreign send must not append, got %d messages", len(msgs))
	}
}

func TestSessionTitleTruncation(t *testing.T) {
	short := "short question"
	if got := sessionTitle(short); got != short+"..." {
		t.Fatalf("short title = %q", got)
	}

	long := strings.Repeat("a", 80)
	got := sessionTitle(long)
	if got != strings.Repeat("a", 50)+"..." {
		t.Fatalf("long title = %q", got)
	}

	// 截断按字符数而非字节数计算
	cjk := strings.Repeat("职", 60)
	got = sessionTitle(cjk)
	if got != strings.Repeat("职", 50)+"..." {
		t.Fatalf("multibyte title = %q", got)
	}
}

func TestGetHistoryReturnsSessionAndMessages(t *testing.T) {
	chatRepo := newFakeChatRepo()
	svc := NewChatService(chatRepo, &fixedAdvisor{reply: "ok"})

	sessionID, _, err := svc.SendMessage(7, "hello", 0)
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	history, err := svc.GetHistory(7, sessionID)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if history.Session.ID != sessionID {
		t.Fatalf("unexpected session: %+v", history.Session)
	}
	if len(history.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history.Messages))
	}

	if _, err := svc.GetHistory(8, sessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for foreign user, got %v", err)
	}
	if _, err := svc.GetHistory(7, 999); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for missing session, got %v", err)
	}
}
