// Package primary defines the primary ports (driving adapters) for the
// application. These are the interfaces through which the outside world
// drives the application. Every operation takes the caller's principal as
// an explicit argument - there is no ambient "current user".
package primary

import (
	"context"

	"github.com/example/techmarket/internal/core/principal"
)

// MissionService defines the primary port for mission lifecycle operations.
type MissionService interface {
	// Submit creates a new mission request targeting one technician.
	Submit(ctx context.Context, req SubmitMissionRequest) (*SubmitMissionResponse, error)

	// Respond accepts or declines a pending mission. Only the target
	// technician may respond.
	Respond(ctx context.Context, req RespondRequest) (*Mission, error)

	// Complete marks an accepted mission as completed. Either party
	// may complete.
	Complete(ctx context.Context, caller principal.Principal, missionID string) (*Mission, error)

	// Get retrieves a mission. Scoped to the mission's parties.
	Get(ctx context.Context, caller principal.Principal, missionID string) (*Mission, error)

	// List retrieves the caller's missions, newest first.
	List(ctx context.Context, req ListMissionsRequest) ([]*Mission, error)

	// ContactDetails returns the counterparty's contact card. Gated on
	// the mission having reached the accepted state.
	ContactDetails(ctx context.Context, caller principal.Principal, missionID string) (*ContactCard, error)
}

// SubmitMissionRequest contains parameters for submitting a mission.
// Guest callers without a token get one minted; the response returns it so
// the guest can present it on later requests.
type SubmitMissionRequest struct {
	Caller       principal.Principal
	TechnicianID string
	Title        string
	Description  string
	RequestedFor string // optional desired date/time, RFC3339
}

// SubmitMissionResponse contains the result of submitting a mission.
type SubmitMissionResponse struct {
	MissionID  string
	Mission    *Mission
	GuestToken string // set when a new guest token was minted
}

// RespondRequest contains parameters for responding to a mission.
type RespondRequest struct {
	Caller    principal.Principal
	MissionID string
	Decision  string // "accept" or "decline"
}

// ListMissionsRequest contains filter options for listing missions.
type ListMissionsRequest struct {
	Caller principal.Principal
	Role   string // "client" or "technician": which side of the caller's missions
	Status string
	Limit  int
}

// Mission represents a mission entity at the port boundary.
type Mission struct {
	ID           string
	Title        string
	Description  string
	RequestedFor string
	Status       string
	ClientRef    string
	ClientName   string // guest name for guest missions
	TechnicianID string
	CreatedAt    string
	AcceptedAt   string
}

// ContactCard is the counterparty contact view unlocked by acceptance.
type ContactCard struct {
	ProfileID  string // empty for guest counterparties
	Name       string
	Email      string
	Phone      string
	ProfileURL string
}
