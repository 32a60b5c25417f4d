package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/techmarket/internal/core/fault"
	coremission "github.com/example/techmarket/internal/core/mission"
	"github.com/example/techmarket/internal/core/principal"
	"github.com/example/techmarket/internal/ports/primary"
	"github.com/example/techmarket/internal/ports/secondary"
)

// MissionServiceImpl implements the MissionService interface.
type MissionServiceImpl struct {
	missionRepo secondary.MissionRepository
	profileRepo secondary.ProfileRepository
	notifier    secondary.Notifier
	now         func() time.Time
}

// NewMissionService creates a new MissionService with injected dependencies.
func NewMissionService(
	missionRepo secondary.MissionRepository,
	profileRepo secondary.ProfileRepository,
	notifier secondary.Notifier,
) *MissionServiceImpl {
	return &MissionServiceImpl{
		missionRepo: missionRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

// Submit creates a new mission request targeting one technician.
func (s *MissionServiceImpl) Submit(ctx context.Context, req primary.SubmitMissionRequest) (*primary.SubmitMissionResponse, error) {
	// Guests arriving without a token get one minted; the token becomes
	// their pseudo-identity for every later call.
	caller := req.Caller
	mintedToken := ""
	if caller.Kind == principal.KindGuest && caller.GuestToken == "" {
		mintedToken = principal.NewGuestToken()
		caller.GuestToken = mintedToken
	}
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	if caller.IsGuest() {
		if strings.TrimSpace(caller.Name) == "" || strings.TrimSpace(caller.Email) == "" {
			return nil, fault.Validation("guest submissions require a name and an email")
		}
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, fault.Validation("title is required")
	}
	if req.RequestedFor != "" {
		if _, err := time.Parse(time.RFC3339, req.RequestedFor); err != nil {
			return nil, fault.Validation("requested date must be RFC3339: %v", err)
		}
	}

	// The target must resolve to an existing technician profile.
	tech, err := s.profileRepo.GetByID(ctx, req.TechnicianID)
	if err != nil {
		return nil, err
	}
	if tech.Role != "technician" {
		return nil, fault.NotFound("technician profile %s not found", req.TechnicianID)
	}

	nextID, err := s.missionRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mission ID: %w", err)
	}

	record := &secondary.MissionRecord{
		ID:           nextID,
		Title:        req.Title,
		Description:  req.Description,
		RequestedFor: req.RequestedFor,
		Status:       string(coremission.InitialStatus()),
		TechnicianID: req.TechnicianID,
	}
	if caller.IsGuest() {
		record.GuestToken = caller.GuestToken
		record.GuestName = caller.Name
		record.GuestEmail = caller.Email
	} else {
		record.ClientProfileID = caller.ProfileID
	}

	if err := s.missionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create mission: %w", err)
	}

	created, err := s.missionRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created mission: %w", err)
	}

	s.notifier.Notify(ctx, secondary.Notification{
		Event:        secondary.EventMissionSubmitted,
		MissionID:    created.ID,
		RecipientRef: created.TechnicianID,
		Detail:       fmt.Sprintf("new mission request: %s", created.Title),
	})

	return &primary.SubmitMissionResponse{
		MissionID:  created.ID,
		Mission:    s.recordToMission(created),
		GuestToken: mintedToken,
	}, nil
}

// Respond accepts or declines a pending mission.
func (s *MissionServiceImpl) Respond(ctx context.Context, req primary.RespondRequest) (*primary.Mission, error) {
	if err := req.Caller.Validate(); err != nil {
		return nil, err
	}

	decision := coremission.Decision(req.Decision)
	if !decision.Valid() {
		return nil, fault.Validation("decision must be %q or %q", coremission.DecisionAccept, coremission.DecisionDecline)
	}

	record, err := s.missionRepo.GetByID(ctx, req.MissionID)
	if err != nil {
		return nil, err
	}

	if result := coremission.CanRespond(snapshotOf(record), req.Caller.Ref()); !result.Allowed {
		return nil, result.Error()
	}

	transition := coremission.ApplyDecision(decision, s.now())
	change := secondary.StatusChange{
		MissionID:  record.ID,
		FromStatus: string(coremission.StatusPending),
		ToStatus:   string(transition.NewStatus),
	}
	if transition.AcceptedAt != nil {
		change.AcceptedAt = transition.AcceptedAt.UTC().Format(time.RFC3339)
	}

	// The conditional update is the arbiter for concurrent responses:
	// the guard above can pass on a stale read and still lose here.
	if err := s.missionRepo.UpdateStatus(ctx, change); err != nil {
		return nil, err
	}

	event := secondary.EventMissionDeclined
	detail := fmt.Sprintf("mission %s was declined", record.ID)
	if transition.NewStatus == coremission.StatusAccepted {
		event = secondary.EventMissionAccepted
		detail = fmt.Sprintf("mission %s was accepted", record.ID)
	}
	s.notifier.Notify(ctx, secondary.Notification{
		Event:        event,
		MissionID:    record.ID,
		RecipientRef: record.ClientRef(),
		Detail:       detail,
	})

	updated, err := s.missionRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated mission: %w", err)
	}
	return s.recordToMission(updated), nil
}

// Complete marks an accepted mission as completed.
func (s *MissionServiceImpl) Complete(ctx context.Context, caller principal.Principal, missionID string) (*primary.Mission, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	record, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}

	snap := snapshotOf(record)
	if result := coremission.CanComplete(snap, caller.Ref()); !result.Allowed {
		return nil, result.Error()
	}

	change := secondary.StatusChange{
		MissionID:  record.ID,
		FromStatus: string(coremission.StatusAccepted),
		ToStatus:   string(coremission.StatusCompleted),
	}
	if err := s.missionRepo.UpdateStatus(ctx, change); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, secondary.Notification{
		Event:        secondary.EventMissionCompleted,
		MissionID:    record.ID,
		RecipientRef: snap.CounterpartyRef(caller.Ref()),
		Detail:       fmt.Sprintf("mission %s was marked completed", record.ID),
	})

	updated, err := s.missionRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated mission: %w", err)
	}
	return s.recordToMission(updated), nil
}

// Get retrieves a mission, scoped to its parties.
func (s *MissionServiceImpl) Get(ctx context.Context, caller principal.Principal, missionID string) (*primary.Mission, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	record, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}

	if result := coremission.CanView(snapshotOf(record), caller.Ref()); !result.Allowed {
		return nil, result.Error()
	}

	return s.recordToMission(record), nil
}

// List retrieves the caller's missions, newest first.
func (s *MissionServiceImpl) List(ctx context.Context, req primary.ListMissionsRequest) ([]*primary.Mission, error) {
	if err := req.Caller.Validate(); err != nil {
		return nil, err
	}
	if req.Status != "" && !coremission.Status(req.Status).Valid() {
		return nil, fault.Validation("unknown status %q", req.Status)
	}

	filters := secondary.MissionFilters{Status: req.Status, Limit: req.Limit}
	switch req.Role {
	case "client":
		filters.ClientRef = req.Caller.Ref()
	case "technician":
		if req.Caller.IsGuest() {
			return nil, fault.Forbidden("guest principals have no technician missions")
		}
		filters.TechnicianID = req.Caller.ProfileID
	default:
		return nil, fault.Validation("role must be %q or %q", "client", "technician")
	}

	records, err := s.missionRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}

	missions := make([]*primary.Mission, len(records))
	for i, r := range records {
		missions[i] = s.recordToMission(r)
	}
	return missions, nil
}

// ContactDetails returns the counterparty's contact card once the mission
// has unlocked it.
func (s *MissionServiceImpl) ContactDetails(ctx context.Context, caller principal.Principal, missionID string) (*primary.ContactCard, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	record, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}

	snap := snapshotOf(record)
	if result := coremission.CanViewContact(snap, caller.Ref()); !result.Allowed {
		return nil, result.Error()
	}

	counterparty := snap.CounterpartyRef(caller.Ref())
	if counterparty == record.ClientRef() && record.GuestToken != "" {
		// Guest clients have no profile; their card is the contact
		// details supplied at submission.
		return &primary.ContactCard{
			Name:  record.GuestName,
			Email: record.GuestEmail,
		}, nil
	}

	profile, err := s.profileRepo.GetByID(ctx, counterparty)
	if err != nil {
		return nil, err
	}

	return &primary.ContactCard{
		ProfileID:  profile.ID,
		Name:       strings.TrimSpace(profile.FirstName + " " + profile.LastName),
		Email:      profile.Email,
		Phone:      profile.Phone,
		ProfileURL: profile.ProfileURL,
	}, nil
}

// Helper methods

func snapshotOf(r *secondary.MissionRecord) coremission.Snapshot {
	return coremission.Snapshot{
		ID:           r.ID,
		Status:       coremission.Status(r.Status),
		ClientRef:    r.ClientRef(),
		TechnicianID: r.TechnicianID,
	}
}

func (s *MissionServiceImpl) recordToMission(r *secondary.MissionRecord) *primary.Mission {
	return &primary.Mission{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		RequestedFor: r.RequestedFor,
		Status:       r.Status,
		ClientRef:    r.ClientRef(),
		ClientName:   r.GuestName,
		TechnicianID: r.TechnicianID,
		CreatedAt:    r.CreatedAt,
		AcceptedAt:   r.AcceptedAt,
	}
}

// Ensure MissionServiceImpl implements the interface.
var _ primary.MissionService = (*MissionServiceImpl)(nil)
