package primary

import (
	"context"

	"github.com/example/techmarket/internal/core/principal"
)

// CatalogService defines the primary port for skill and brand tags on
// technician profiles. Tags are free-form names, created on first use.
type CatalogService interface {
	// AddSkill links a skill to the caller's technician profile,
	// creating the skill if absent.
	AddSkill(ctx context.Context, req TagRequest) (*Tag, error)

	// RemoveSkill unlinks a skill from the caller's technician profile.
	RemoveSkill(ctx context.Context, req TagRequest) error

	// AddBrand links a brand to the caller's technician profile,
	// creating the brand if absent.
	AddBrand(ctx context.Context, req TagRequest) (*Tag, error)

	// RemoveBrand unlinks a brand from the caller's technician profile.
	RemoveBrand(ctx context.Context, req TagRequest) error

	// TagsFor lists the skills and brands linked to a profile.
	TagsFor(ctx context.Context, profileID string) (*ProfileTags, error)
}

// TagRequest contains parameters for a tag link or unlink operation.
type TagRequest struct {
	Caller    principal.Principal
	ProfileID string
	Name      string
}

// Tag represents a skill or brand at the port boundary.
type Tag struct {
	ID   string
	Name string
}

// ProfileTags groups a profile's linked tags.
type ProfileTags struct {
	Skills []Tag
	Brands []Tag
}
