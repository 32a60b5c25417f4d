package identity

import (
	"context"
	"testing"
	"time"

	"github.com/example/techmarket/internal/core/fault"
	"github.com/example/techmarket/internal/core/principal"
)

func TestManager_IssueAndResolve(t *testing.T) {
	ctx := context.Background()
	manager := NewManager("test-secret", time.Hour)

	token, err := manager.Issue(ctx, "PRO-001")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a non-empty token")
	}

	p, err := manager.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p.Kind != principal.KindAccount || p.ProfileID != "PRO-001" {
		t.Errorf("Expected account principal for PRO-001, got %+v", p)
	}
}

func TestManager_Issue_RequiresProfileID(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	_, err := manager.Issue(context.Background(), "")
	if !fault.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestManager_Resolve_RejectsGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	for _, bearer := range []string{"", "not-a-token", "a.b.c"} {
		_, err := manager.Resolve(context.Background(), bearer)
		if !fault.IsForbidden(err) {
			t.Errorf("Expected forbidden for %q, got %v", bearer, err)
		}
	}
}

func TestManager_Resolve_RejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	token, err := issuer.Issue(ctx, "PRO-001")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = verifier.Resolve(ctx, token)
	if !fault.IsForbidden(err) {
		t.Errorf("Expected forbidden for foreign signature, got %v", err)
	}
}

func TestManager_Resolve_RejectsExpired(t *testing.T) {
	ctx := context.Background()
	manager := NewManager("test-secret", time.Minute)

	token, err := manager.Issue(ctx, "PRO-001")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Shift the verifier's clock past the token's lifetime.
	manager.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = manager.Resolve(ctx, token)
	if !fault.IsForbidden(err) {
		t.Errorf("Expected forbidden for expired token, got %v", err)
	}
}
