package app

import (
	"context"
	"testing"

	"github.com/example/techmarket/internal/core/fault"
	"github.com/example/techmarket/internal/core/principal"
	"github.com/example/techmarket/internal/ports/primary"
	"github.com/example/techmarket/internal/ports/secondary"
)

func newTestMessageService() (*MessageServiceImpl, *mockMessageRepository, *mockMissionRepository, *mockNotifier) {
	messageRepo := newMockMessageRepository()
	missionRepo := newMockMissionRepository()
	notifier := newMockNotifier()
	return NewMessageService(messageRepo, missionRepo, notifier), messageRepo, missionRepo, notifier
}

func seedAcceptedMission(repo *mockMissionRepository) {
	repo.seed(&secondary.MissionRecord{
		ID: "MSN-001", Title: "Fix it", Status: "accepted",
		ClientProfileID: "PRO-001", TechnicianID: "PRO-002",
		AcceptedAt: "2026-01-05T10:00:00Z",
	})
}

func TestMessageService_Post(t *testing.T) {
	ctx := context.Background()
	service, _, missionRepo, notifier := newTestMessageService()
	seedAcceptedMission(missionRepo)

	message, err := service.Post(ctx, primary.PostMessageRequest{
		Caller:    principal.Account("PRO-001"),
		MissionID: "MSN-001",
		Body:      "When can you come by?",
	})
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if message.ID != "MSG-001" {
		t.Errorf("Expected message ID MSG-001, got %s", message.ID)
	}
	if message.SenderRef != "PRO-001" {
		t.Errorf("Expected sender PRO-001, got %s", message.SenderRef)
	}
	if message.ReadAt != "" {
		t.Errorf("Expected new message unread, got read_at %s", message.ReadAt)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Event != secondary.EventMessagePosted {
		t.Errorf("Expected one message_posted notification, got %+v", notifier.sent)
	}
	if notifier.sent[0].RecipientRef != "PRO-002" {
		t.Errorf("Expected notification for counterparty, got %s", notifier.sent[0].RecipientRef)
	}
}

func TestMessageService_Post_Guards(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		status   string
		caller   principal.Principal
		body     string
		wantKind fault.Kind
	}{
		{"locked while pending", "pending", principal.Account("PRO-001"), "hi", fault.KindForbidden},
		{"locked after decline", "declined", principal.Account("PRO-001"), "hi", fault.KindForbidden},
		{"open after completion", "completed", principal.Account("PRO-001"), "hi", ""},
		{"non-party", "accepted", principal.Account("PRO-099"), "hi", fault.KindForbidden},
		{"empty body", "accepted", principal.Account("PRO-001"), "  ", fault.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, missionRepo, _ := newTestMessageService()
			missionRepo.seed(&secondary.MissionRecord{
				ID: "MSN-001", Title: "Fix it", Status: tt.status,
				ClientProfileID: "PRO-001", TechnicianID: "PRO-002",
			})

			_, err := service.Post(ctx, primary.PostMessageRequest{
				Caller: tt.caller, MissionID: "MSN-001", Body: tt.body,
			})
			if tt.wantKind == "" {
				if err != nil {
					t.Errorf("Expected success, got %v", err)
				}
				return
			}
			if fault.KindOf(err) != tt.wantKind {
				t.Errorf("Expected kind %s, got %s (%v)", tt.wantKind, fault.KindOf(err), err)
			}
		})
	}
}

func TestMessageService_Thread(t *testing.T) {
	ctx := context.Background()
	service, _, missionRepo, _ := newTestMessageService()
	seedAcceptedMission(missionRepo)

	client := principal.Account("PRO-001")
	tech := principal.Account("PRO-002")
	for _, post := range []struct {
		caller principal.Principal
		body   string
	}{
		{client, "When can you come by?"},
		{tech, "Thursday morning works."},
		{client, "See you then."},
	} {
		if _, err := service.Post(ctx, primary.PostMessageRequest{
			Caller: post.caller, MissionID: "MSN-001", Body: post.body,
		}); err != nil {
			t.Fatalf("Post failed: %v", err)
		}
	}

	thread, err := service.Thread(ctx, tech, "MSN-001")
	if err != nil {
		t.Fatalf("Thread failed: %v", err)
	}
	if len(thread) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(thread))
	}
	if thread[0].Body != "When can you come by?" || thread[2].Body != "See you then." {
		t.Errorf("Expected creation order, got %q .. %q", thread[0].Body, thread[2].Body)
	}

	_, err = service.Thread(ctx, principal.Account("PRO-099"), "MSN-001")
	if !fault.IsForbidden(err) {
		t.Errorf("Expected forbidden for non-party, got %v", err)
	}
}

func TestMessageService_MarkThreadRead(t *testing.T) {
	ctx := context.Background()
	service, _, missionRepo, _ := newTestMessageService()
	seedAcceptedMission(missionRepo)

	client := principal.Account("PRO-001")
	tech := principal.Account("PRO-002")
	for _, body := range []string{"one", "two"} {
		if _, err := service.Post(ctx, primary.PostMessageRequest{
			Caller: client, MissionID: "MSN-001", Body: body,
		}); err != nil {
			t.Fatalf("Post failed: %v", err)
		}
	}
	if _, err := service.Post(ctx, primary.PostMessageRequest{
		Caller: tech, MissionID: "MSN-001", Body: "three",
	}); err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	count, err := service.UnreadCount(ctx, tech, "MSN-001")
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 unread for technician, got %d", count)
	}

	if err := service.MarkThreadRead(ctx, tech, "MSN-001"); err != nil {
		t.Fatalf("MarkThreadRead failed: %v", err)
	}

	count, err = service.UnreadCount(ctx, tech, "MSN-001")
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 unread after mark, got %d", count)
	}

	// The client's own unread message stays unread.
	count, err = service.UnreadCount(ctx, client, "MSN-001")
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 unread for client, got %d", count)
	}

	// Marking twice is a no-op.
	if err := service.MarkThreadRead(ctx, tech, "MSN-001"); err != nil {
		t.Errorf("Second MarkThreadRead failed: %v", err)
	}
}

func TestMessageService_GuestParty(t *testing.T) {
	ctx := context.Background()
	service, _, missionRepo, _ := newTestMessageService()
	token := principal.NewGuestToken()
	missionRepo.seed(&secondary.MissionRecord{
		ID: "MSN-001", Title: "Fix it", Status: "accepted",
		GuestToken: token, GuestName: "Gus", GuestEmail: "gus@example.com",
		TechnicianID: "PRO-002", AcceptedAt: "2026-01-05T10:00:00Z",
	})

	guest := principal.Guest(token, "Gus", "gus@example.com")
	message, err := service.Post(ctx, primary.PostMessageRequest{
		Caller: guest, MissionID: "MSN-001", Body: "hello",
	})
	if err != nil {
		t.Fatalf("Guest post failed: %v", err)
	}
	if message.SenderRef != token {
		t.Errorf("Expected guest token as sender ref, got %s", message.SenderRef)
	}

	// A different guest token is not a party.
	other := principal.Guest(principal.NewGuestToken(), "Eve", "eve@example.com")
	_, err = service.Thread(ctx, other, "MSN-001")
	if !fault.IsForbidden(err) {
		t.Errorf("Expected forbidden for foreign guest token, got %v", err)
	}
}
