package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/techmarket/internal/core/fault"
	"github.com/example/techmarket/internal/ports/secondary"
)

// MessageRepository implements secondary.MessageRepository with SQLite.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new SQLite message repository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create persists a new message.
// The record must have ID pre-populated by the service layer.
func (r *MessageRepository) Create(ctx context.Context, message *secondary.MessageRecord) error {
	if message.ID == "" {
		return fmt.Errorf("message ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (id, mission_id, sender_ref, body) VALUES (?, ?, ?, ?)",
		message.ID, message.MissionID, message.SenderRef, message.Body,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetByID retrieves a message by its ID.
func (r *MessageRepository) GetByID(ctx context.Context, id string) (*secondary.MessageRecord, error) {
	var (
		createdAt time.Time
		readAt    sql.NullTime
	)

	record := &secondary.MessageRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, mission_id, sender_ref, body, created_at, read_at FROM messages WHERE id = ?",
		id,
	).Scan(&record.ID, &record.MissionID, &record.SenderRef, &record.Body, &createdAt, &readAt)

	if err == sql.ErrNoRows {
		return nil, fault.NotFound("message %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	if readAt.Valid {
		record.ReadAt = readAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// ListByMission retrieves a mission's thread ordered by creation time
// ascending.
func (r *MessageRepository) ListByMission(ctx context.Context, missionID string) ([]*secondary.MessageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, mission_id, sender_ref, body, created_at, read_at FROM messages WHERE mission_id = ? ORDER BY created_at ASC, id ASC",
		missionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*secondary.MessageRecord
	for rows.Next() {
		var (
			createdAt time.Time
			readAt    sql.NullTime
		)

		record := &secondary.MessageRecord{}
		if err := rows.Scan(&record.ID, &record.MissionID, &record.SenderRef, &record.Body, &createdAt, &readAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		record.CreatedAt = createdAt.Format(time.RFC3339)
		if readAt.Valid {
			record.ReadAt = readAt.Time.Format(time.RFC3339)
		}

		messages = append(messages, record)
	}

	return messages, rows.Err()
}

// MarkThreadRead stamps read_at on every unread message in the thread not
// sent by readerRef. Already-read messages are untouched, which makes the
// operation idempotent.
func (r *MessageRepository) MarkThreadRead(ctx context.Context, missionID, readerRef string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE messages SET read_at = CURRENT_TIMESTAMP WHERE mission_id = ? AND sender_ref != ? AND read_at IS NULL",
		missionID, readerRef,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark thread read: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}

// UnreadCount returns the number of unread messages in the thread addressed
// to readerRef.
func (r *MessageRepository) UnreadCount(ctx context.Context, missionID, readerRef string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE mission_id = ? AND sender_ref != ? AND read_at IS NULL",
		missionID, readerRef,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}

// GetNextID returns the next available message ID.
func (r *MessageRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM messages",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next message ID: %w", err)
	}

	return fmt.Sprintf("MSG-%03d", maxID+1), nil
}

// Ensure MessageRepository implements the interface
var _ secondary.MessageRepository = (*MessageRepository)(nil)
