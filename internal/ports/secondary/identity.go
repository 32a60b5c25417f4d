package secondary

import (
	"context"

	"github.com/example/techmarket/internal/core/principal"
)

// IdentityProvider defines the secondary port for resolving bearer
// credentials to principals.
type IdentityProvider interface {
	// Resolve maps an opaque bearer credential to an authenticated
	// principal. Fails with a forbidden fault for invalid or expired
	// credentials.
	Resolve(ctx context.Context, bearer string) (principal.Principal, error)

	// Issue creates a bearer credential for the given profile.
	Issue(ctx context.Context, profileID string) (string, error)
}
