package app

import (
	"context"
	"testing"

	"github.com/example/techmarket/internal/core/fault"
	"github.com/example/techmarket/internal/core/principal"
	"github.com/example/techmarket/internal/ports/primary"
)

func newTestCatalogService() (*CatalogServiceImpl, *mockProfileRepository, *mockTagRepository) {
	profileRepo := newMockProfileRepository()
	tagRepo := newMockTagRepository(profileRepo)
	return NewCatalogService(tagRepo, profileRepo), profileRepo, tagRepo
}

func TestCatalogService_AddSkill(t *testing.T) {
	ctx := context.Background()
	service, profileRepo, _ := newTestCatalogService()
	seedTechnician(profileRepo, "PRO-001", "Tara")

	tag, err := service.AddSkill(ctx, primary.TagRequest{
		Caller:    principal.Account("PRO-001"),
		ProfileID: "PRO-001",
		Name:      "soldering",
	})
	if err != nil {
		t.Fatalf("AddSkill failed: %v", err)
	}
	if tag.Name != "soldering" {
		t.Errorf("Expected skill soldering, got %s", tag.Name)
	}

	// Adding the same skill again reuses the tag and stays linked once.
	again, err := service.AddSkill(ctx, primary.TagRequest{
		Caller:    principal.Account("PRO-001"),
		ProfileID: "PRO-001",
		Name:      "soldering",
	})
	if err != nil {
		t.Fatalf("Second AddSkill failed: %v", err)
	}
	if again.ID != tag.ID {
		t.Errorf("Expected the same tag ID on reuse, got %s and %s", tag.ID, again.ID)
	}

	tags, err := service.TagsFor(ctx, "PRO-001")
	if err != nil {
		t.Fatalf("TagsFor failed: %v", err)
	}
	if len(tags.Skills) != 1 {
		t.Errorf("Expected 1 linked skill, got %d", len(tags.Skills))
	}
}

func TestCatalogService_AddBrand(t *testing.T) {
	ctx := context.Background()
	service, profileRepo, _ := newTestCatalogService()
	seedTechnician(profileRepo, "PRO-001", "Tara")

	tag, err := service.AddBrand(ctx, primary.TagRequest{
		Caller:    principal.Account("PRO-001"),
		ProfileID: "PRO-001",
		Name:      "Bosch",
	})
	if err != nil {
		t.Fatalf("AddBrand failed: %v", err)
	}
	if tag.Name != "Bosch" {
		t.Errorf("Expected brand Bosch, got %s", tag.Name)
	}
}

func TestCatalogService_RemoveSkill(t *testing.T) {
	ctx := context.Background()
	service, profileRepo, _ := newTestCatalogService()
	seedTechnician(profileRepo, "PRO-001", "Tara")
	owner := principal.Account("PRO-001")

	if _, err := service.AddSkill(ctx, primary.TagRequest{
		Caller: owner, ProfileID: "PRO-001", Name: "welding",
	}); err != nil {
		t.Fatalf("AddSkill failed: %v", err)
	}

	if err := service.RemoveSkill(ctx, primary.TagRequest{
		Caller: owner, ProfileID: "PRO-001", Name: "welding",
	}); err != nil {
		t.Fatalf("RemoveSkill failed: %v", err)
	}

	tags, err := service.TagsFor(ctx, "PRO-001")
	if err != nil {
		t.Fatalf("TagsFor failed: %v", err)
	}
	if len(tags.Skills) != 0 {
		t.Errorf("Expected no skills after removal, got %d", len(tags.Skills))
	}

	// Removing an unknown skill reports not found.
	err = service.RemoveSkill(ctx, primary.TagRequest{
		Caller: owner, ProfileID: "PRO-001", Name: "plumbing",
	})
	if !fault.IsNotFound(err) {
		t.Errorf("Expected not found for unknown skill, got %v", err)
	}
}

func TestCatalogService_TagChangeAuthorization(t *testing.T) {
	ctx := context.Background()
	service, profileRepo, _ := newTestCatalogService()
	seedTechnician(profileRepo, "PRO-001", "Tara")
	seedClient(profileRepo, "PRO-002", "Cleo")

	tests := []struct {
		name     string
		req      primary.TagRequest
		wantKind fault.Kind
	}{
		{
			name:     "non-owner",
			req:      primary.TagRequest{Caller: principal.Account("PRO-002"), ProfileID: "PRO-001", Name: "x"},
			wantKind: fault.KindForbidden,
		},
		{
			name:     "guest caller",
			req:      primary.TagRequest{Caller: principal.Guest(principal.NewGuestToken(), "G", "g@x.com"), ProfileID: "PRO-001", Name: "x"},
			wantKind: fault.KindForbidden,
		},
		{
			name:     "client profile",
			req:      primary.TagRequest{Caller: principal.Account("PRO-002"), ProfileID: "PRO-002", Name: "x"},
			wantKind: fault.KindValidation,
		},
		{
			name:     "empty name",
			req:      primary.TagRequest{Caller: principal.Account("PRO-001"), ProfileID: "PRO-001", Name: " "},
			wantKind: fault.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AddSkill(ctx, tt.req)
			if fault.KindOf(err) != tt.wantKind {
				t.Errorf("Expected kind %s, got %s (%v)", tt.wantKind, fault.KindOf(err), err)
			}
		})
	}
}

func TestCatalogService_TagsFor_UnknownProfile(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestCatalogService()

	_, err := service.TagsFor(ctx, "PRO-999")
	if !fault.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
}
