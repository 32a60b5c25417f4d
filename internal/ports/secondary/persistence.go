// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems.
package secondary

import "context"

// MissionRepository defines the secondary port for mission persistence.
type MissionRepository interface {
	// Create persists a new mission.
	Create(ctx context.Context, mission *MissionRecord) error

	// GetByID retrieves a mission by its ID.
	GetByID(ctx context.Context, id string) (*MissionRecord, error)

	// List retrieves missions matching the given filters, newest first.
	List(ctx context.Context, filters MissionFilters) ([]*MissionRecord, error)

	// UpdateStatus conditionally transitions a mission's status. The
	// update applies only if the stored status still equals FromStatus;
	// otherwise it fails with an invalid-transition fault (or not-found
	// if the mission does not exist).
	UpdateStatus(ctx context.Context, change StatusChange) error

	// GetNextID returns the next available mission ID.
	GetNextID(ctx context.Context) (string, error)
}

// MissionRecord represents a mission as stored in persistence. Exactly one
// of ClientProfileID or GuestToken is set; guest missions also carry the
// guest-supplied name and email. Timestamps are RFC3339 strings at this
// boundary.
type MissionRecord struct {
	ID           string
	Title        string
	Description  string
	RequestedFor string // optional desired date/time for the work
	Status       string
	ClientProfileID string
	GuestToken      string
	GuestName       string
	GuestEmail      string
	TechnicianID    string
	CreatedAt       string
	UpdatedAt       string
	AcceptedAt      string
}

// ClientRef returns the reference identifying the client party: the client
// profile ID for authenticated clients, the guest token otherwise.
func (r *MissionRecord) ClientRef() string {
	if r.ClientProfileID != "" {
		return r.ClientProfileID
	}
	return r.GuestToken
}

// MissionFilters contains filter options for querying missions.
type MissionFilters struct {
	ClientRef    string // match client profile ID or guest token
	TechnicianID string
	Status       string
	Limit        int
}

// StatusChange describes a conditional status transition.
type StatusChange struct {
	MissionID  string
	FromStatus string
	ToStatus   string
	AcceptedAt string // set only when the transition stamps acceptance
}

// MessageRepository defines the secondary port for message persistence.
type MessageRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, message *MessageRecord) error

	// GetByID retrieves a message by its ID.
	GetByID(ctx context.Context, id string) (*MessageRecord, error)

	// ListByMission retrieves a mission's thread ordered by creation
	// time ascending.
	ListByMission(ctx context.Context, missionID string) ([]*MessageRecord, error)

	// MarkThreadRead stamps read_at on every unread message in the
	// thread not sent by readerRef. Idempotent; returns the number of
	// messages newly marked.
	MarkThreadRead(ctx context.Context, missionID, readerRef string) (int, error)

	// UnreadCount returns the number of unread messages in the thread
	// addressed to readerRef.
	UnreadCount(ctx context.Context, missionID, readerRef string) (int, error)

	// GetNextID returns the next available message ID.
	GetNextID(ctx context.Context) (string, error)
}

// MessageRecord represents a message as stored in persistence.
type MessageRecord struct {
	ID        string
	MissionID string
	SenderRef string
	Body      string
	CreatedAt string
	ReadAt    string
}

// ProfileRepository defines the secondary port for profile persistence.
type ProfileRepository interface {
	// Create persists a new profile.
	Create(ctx context.Context, profile *ProfileRecord) error

	// GetByID retrieves a profile by its ID.
	GetByID(ctx context.Context, id string) (*ProfileRecord, error)

	// Update updates a profile's mutable fields. The role tag is
	// immutable and never written after creation.
	Update(ctx context.Context, profile *ProfileRecord) error

	// List retrieves profiles matching the given filters.
	List(ctx context.Context, filters ProfileFilters) ([]*ProfileRecord, error)

	// GetNextID returns the next available profile ID.
	GetNextID(ctx context.Context) (string, error)
}

// ProfileRecord represents a profile as stored in persistence.
type ProfileRecord struct {
	ID         string
	AuthRef    string // opaque identity-provider reference
	Role       string // "client" or "technician", immutable
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	ProfileURL string
	Rate       float64 // hourly rate, technicians only
	Bio        string
	PhotoRef   string
	CreatedAt  string
	UpdatedAt  string
}

// ProfileFilters contains filter options for querying profiles.
type ProfileFilters struct {
	Role      string
	NameQuery string // substring match on first/last name
	Skill     string // require a linked skill with this name
	Brand     string // require a linked brand with this name
	Limit     int
}

// TagRepository defines the secondary port for skill and brand tags.
// Tags are create-if-absent; links are idempotent.
type TagRepository interface {
	// EnsureSkill returns the skill with the given name, creating it
	// if absent.
	EnsureSkill(ctx context.Context, name string) (*TagRecord, error)

	// EnsureBrand returns the brand with the given name, creating it
	// if absent.
	EnsureBrand(ctx context.Context, name string) (*TagRecord, error)

	// FindSkill retrieves a skill by name. Fails with a not-found
	// fault if absent.
	FindSkill(ctx context.Context, name string) (*TagRecord, error)

	// FindBrand retrieves a brand by name. Fails with a not-found
	// fault if absent.
	FindBrand(ctx context.Context, name string) (*TagRecord, error)

	// LinkSkill associates a skill with a technician profile.
	LinkSkill(ctx context.Context, profileID, skillID string) error

	// UnlinkSkill removes a skill association.
	UnlinkSkill(ctx context.Context, profileID, skillID string) error

	// LinkBrand associates a brand with a technician profile.
	LinkBrand(ctx context.Context, profileID, brandID string) error

	// UnlinkBrand removes a brand association.
	UnlinkBrand(ctx context.Context, profileID, brandID string) error

	// SkillsForProfile lists the skills linked to a profile.
	SkillsForProfile(ctx context.Context, profileID string) ([]*TagRecord, error)

	// BrandsForProfile lists the brands linked to a profile.
	BrandsForProfile(ctx context.Context, profileID string) ([]*TagRecord, error)
}

// TagRecord represents a skill or brand tag as stored in persistence.
type TagRecord struct {
	ID        string
	Name      string
	CreatedAt string
}
