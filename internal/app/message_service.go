package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/techmarket/internal/core/fault"
	coremission "github.com/example/techmarket/internal/core/mission"
	"github.com/example/techmarket/internal/core/principal"
	"github.com/example/techmarket/internal/ports/primary"
	"github.com/example/techmarket/internal/ports/secondary"
)

// MessageServiceImpl implements the MessageService interface.
type MessageServiceImpl struct {
	messageRepo secondary.MessageRepository
	missionRepo secondary.MissionRepository
	notifier    secondary.Notifier
}

// NewMessageService creates a new MessageService with injected dependencies.
func NewMessageService(
	messageRepo secondary.MessageRepository,
	missionRepo secondary.MissionRepository,
	notifier secondary.Notifier,
) *MessageServiceImpl {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		missionRepo: missionRepo,
		notifier:    notifier,
	}
}

// Post appends a message to a mission's thread. The mission must have
// reached the accepted state; this is enforced here once, centrally.
func (s *MessageServiceImpl) Post(ctx context.Context, req primary.PostMessageRequest) (*primary.Message, error) {
	if err := req.Caller.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, fault.Validation("message body is required")
	}

	mission, err := s.missionRepo.GetByID(ctx, req.MissionID)
	if err != nil {
		return nil, err
	}

	snap := snapshotOf(mission)
	if result := coremission.CanPostMessage(snap, req.Caller.Ref()); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.messageRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate message ID: %w", err)
	}

	record := &secondary.MessageRecord{
		ID:        nextID,
		MissionID: mission.ID,
		SenderRef: req.Caller.Ref(),
		Body:      req.Body,
	}
	if err := s.messageRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	created, err := s.messageRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created message: %w", err)
	}

	s.notifier.Notify(ctx, secondary.Notification{
		Event:        secondary.EventMessagePosted,
		MissionID:    mission.ID,
		RecipientRef: snap.CounterpartyRef(req.Caller.Ref()),
		Detail:       fmt.Sprintf("new message on mission %s", mission.ID),
	})

	return recordToMessage(created), nil
}

// Thread retrieves a mission's messages in creation order.
func (s *MessageServiceImpl) Thread(ctx context.Context, caller principal.Principal, missionID string) ([]*primary.Message, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	mission, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if result := coremission.CanReadThread(snapshotOf(mission), caller.Ref()); !result.Allowed {
		return nil, result.Error()
	}

	records, err := s.messageRepo.ListByMission(ctx, missionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*primary.Message, len(records))
	for i, r := range records {
		messages[i] = recordToMessage(r)
	}
	return messages, nil
}

// MarkThreadRead stamps read_at on all messages addressed to the caller.
// Idempotent.
func (s *MessageServiceImpl) MarkThreadRead(ctx context.Context, caller principal.Principal, missionID string) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	mission, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return err
	}
	if result := coremission.CanReadThread(snapshotOf(mission), caller.Ref()); !result.Allowed {
		return result.Error()
	}

	if _, err := s.messageRepo.MarkThreadRead(ctx, missionID, caller.Ref()); err != nil {
		return fmt.Errorf("failed to mark thread read: %w", err)
	}
	return nil
}

// UnreadCount returns the number of unread messages addressed to the caller.
func (s *MessageServiceImpl) UnreadCount(ctx context.Context, caller principal.Principal, missionID string) (int, error) {
	if err := caller.Validate(); err != nil {
		return 0, err
	}

	mission, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return 0, err
	}
	if result := coremission.CanReadThread(snapshotOf(mission), caller.Ref()); !result.Allowed {
		return 0, result.Error()
	}

	return s.messageRepo.UnreadCount(ctx, missionID, caller.Ref())
}

func recordToMessage(r *secondary.MessageRecord) *primary.Message {
	return &primary.Message{
		ID:        r.ID,
		MissionID: r.MissionID,
		SenderRef: r.SenderRef,
		Body:      r.Body,
		CreatedAt: r.CreatedAt,
		ReadAt:    r.ReadAt,
	}
}

// Ensure MessageServiceImpl implements the interface.
var _ primary.MessageService = (*MessageServiceImpl)(nil)
