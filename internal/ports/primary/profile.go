package primary

import (
	"context"

	"github.com/example/techmarket/internal/core/principal"
)

// ProfileService defines the primary port for profile management and the
// technician catalog.
type ProfileService interface {
	// Create registers a new profile. The role tag is fixed at
	// creation and immutable afterwards.
	Create(ctx context.Context, req CreateProfileRequest) (*Profile, error)

	// Get retrieves a profile by ID. Contact fields are always present
	// here; mission-scoped visibility is enforced by the mission
	// service, not by profile reads of one's own record.
	Get(ctx context.Context, profileID string) (*Profile, error)

	// Update modifies the caller's own profile. Only the profile owner
	// may update; the role tag is never changed.
	Update(ctx context.Context, req UpdateProfileRequest) (*Profile, error)

	// SearchTechnicians lists technician profiles for the public
	// catalog, optionally filtered by name, skill, or brand. Contact
	// fields are blanked in catalog results.
	SearchTechnicians(ctx context.Context, req TechnicianSearchRequest) ([]*Profile, error)
}

// CreateProfileRequest contains parameters for creating a profile.
type CreateProfileRequest struct {
	AuthRef    string
	Role       string // "client" or "technician"
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	ProfileURL string
	Rate       float64
	Bio        string
	PhotoRef   string
}

// UpdateProfileRequest contains the mutable profile fields. Nil pointers
// leave the stored value unchanged.
type UpdateProfileRequest struct {
	Caller     principal.Principal
	ProfileID  string
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	ProfileURL *string
	Rate       *float64
	Bio        *string
	PhotoRef   *string
}

// TechnicianSearchRequest contains catalog filter options.
type TechnicianSearchRequest struct {
	NameQuery string
	Skill     string
	Brand     string
	Limit     int
}

// Profile represents a profile entity at the port boundary.
type Profile struct {
	ID         string
	Role       string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	ProfileURL string
	Rate       float64
	Bio        string
	PhotoRef   string
	Skills     []string
	Brands     []string
	CreatedAt  string
}
