// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/techmarket/internal/core/fault"
	coremission "github.com/example/techmarket/internal/core/mission"
	"github.com/example/techmarket/internal/ports/secondary"
)

const missionColumns = "id, title, description, requested_for, status, client_profile_id, guest_token, guest_name, guest_email, technician_id, created_at, updated_at, accepted_at"

// MissionRepository implements secondary.MissionRepository with SQLite.
type MissionRepository struct {
	db *sql.DB
}

// NewMissionRepository creates a new SQLite mission repository.
func NewMissionRepository(db *sql.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

// Create persists a new mission.
// The record must have ID and Status pre-populated by the service layer.
func (r *MissionRepository) Create(ctx context.Context, mission *secondary.MissionRecord) error {
	if mission.ID == "" {
		return fmt.Errorf("mission ID must be pre-populated by service layer")
	}
	if mission.Status == "" {
		return fmt.Errorf("mission Status must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO missions (id, title, description, requested_for, status, client_profile_id, guest_token, guest_name, guest_email, technician_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		mission.ID, mission.Title, nullString(mission.Description), nullTime(mission.RequestedFor),
		mission.Status, nullString(mission.ClientProfileID), nullString(mission.GuestToken),
		nullString(mission.GuestName), nullString(mission.GuestEmail), mission.TechnicianID,
	)
	if err != nil {
		return fmt.Errorf("failed to create mission: %w", err)
	}

	return nil
}

// GetByID retrieves a mission by its ID.
func (r *MissionRepository) GetByID(ctx context.Context, id string) (*secondary.MissionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+missionColumns+" FROM missions WHERE id = ?", id,
	)

	record, err := scanMission(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound("mission %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}

	return record, nil
}

// List retrieves missions matching the given filters, newest first.
func (r *MissionRepository) List(ctx context.Context, filters secondary.MissionFilters) ([]*secondary.MissionRecord, error) {
	query := "SELECT " + missionColumns + " FROM missions WHERE 1=1"
	args := []any{}

	if filters.ClientRef != "" {
		query += " AND (client_profile_id = ? OR guest_token = ?)"
		args = append(args, filters.ClientRef, filters.ClientRef)
	}
	if filters.TechnicianID != "" {
		query += " AND technician_id = ?"
		args = append(args, filters.TechnicianID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	defer rows.Close()

	var missions []*secondary.MissionRecord
	for rows.Next() {
		record, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mission: %w", err)
		}
		missions = append(missions, record)
	}

	return missions, rows.Err()
}

// UpdateStatus conditionally transitions a mission's status. The UPDATE is
// guarded on the stored status still matching FromStatus, which makes
// concurrent conflicting responses resolve to exactly one winner.
func (r *MissionRepository) UpdateStatus(ctx context.Context, change secondary.StatusChange) error {
	query := "UPDATE missions SET status = ?, updated_at = CURRENT_TIMESTAMP"
	args := []any{change.ToStatus}

	if change.AcceptedAt != "" {
		acceptedTime, err := time.Parse(time.RFC3339, change.AcceptedAt)
		if err != nil {
			return fmt.Errorf("invalid accepted_at timestamp: %w", err)
		}
		query += ", accepted_at = ?"
		args = append(args, sql.NullTime{Time: acceptedTime, Valid: true})
	}

	query += " WHERE id = ? AND status = ?"
	args = append(args, change.MissionID, change.FromStatus)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update mission status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		return nil
	}

	// Zero rows: either the mission is gone or its status moved under us.
	var current string
	err = r.db.QueryRowContext(ctx, "SELECT status FROM missions WHERE id = ?", change.MissionID).Scan(&current)
	if err == sql.ErrNoRows {
		return fault.NotFound("mission %s not found", change.MissionID)
	}
	if err != nil {
		return fmt.Errorf("failed to check mission status: %w", err)
	}
	return fault.InvalidTransition("mission %s is %s, expected %s", change.MissionID, current, change.FromStatus)
}

// GetNextID returns the next available mission ID.
// Uses the core function for the ID format to keep business rules in the
// functional core.
func (r *MissionRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM missions",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next mission ID: %w", err)
	}

	return coremission.GenerateMissionID(maxID), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMission(row rowScanner) (*secondary.MissionRecord, error) {
	var (
		desc         sql.NullString
		requestedFor sql.NullTime
		clientID     sql.NullString
		guestToken   sql.NullString
		guestName    sql.NullString
		guestEmail   sql.NullString
		createdAt    time.Time
		updatedAt    time.Time
		acceptedAt   sql.NullTime
	)

	record := &secondary.MissionRecord{}
	err := row.Scan(
		&record.ID, &record.Title, &desc, &requestedFor, &record.Status,
		&clientID, &guestToken, &guestName, &guestEmail, &record.TechnicianID,
		&createdAt, &updatedAt, &acceptedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.ClientProfileID = clientID.String
	record.GuestToken = guestToken.String
	record.GuestName = guestName.String
	record.GuestEmail = guestEmail.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if requestedFor.Valid {
		record.RequestedFor = requestedFor.Time.Format(time.RFC3339)
	}
	if acceptedAt.Valid {
		record.AcceptedAt = acceptedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(rfc3339 string) sql.NullTime {
	if rfc3339 == "" {
		return sql.NullTime{}
	}
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// Ensure MissionRepository implements the interface
var _ secondary.MissionRepository = (*MissionRepository)(nil)
