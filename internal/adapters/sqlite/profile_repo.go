package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/techmarket/internal/core/fault"
	"github.com/example/techmarket/internal/ports/secondary"
)

const profileColumns = "id, auth_ref, role, first_name, last_name, email, phone, profile_url, rate, bio, photo_ref, created_at, updated_at"

// ProfileRepository implements secondary.ProfileRepository with SQLite.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new SQLite profile repository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create persists a new profile.
// The record must have ID and Role pre-populated by the service layer.
func (r *ProfileRepository) Create(ctx context.Context, profile *secondary.ProfileRecord) error {
	if profile.ID == "" {
		return fmt.Errorf("profile ID must be pre-populated by service layer")
	}
	if profile.Role == "" {
		return fmt.Errorf("profile Role must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO profiles (id, auth_ref, role, first_name, last_name, email, phone, profile_url, rate, bio, photo_ref) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		profile.ID, nullString(profile.AuthRef), profile.Role, profile.FirstName, profile.LastName,
		profile.Email, nullString(profile.Phone), nullString(profile.ProfileURL), profile.Rate,
		nullString(profile.Bio), nullString(profile.PhotoRef),
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*secondary.ProfileRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id = ?", id,
	)

	record, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound("profile %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return record, nil
}

// Update updates a profile's mutable fields. The role column is never
// written here: the role tag is immutable after creation.
func (r *ProfileRepository) Update(ctx context.Context, profile *secondary.ProfileRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET first_name = ?, last_name = ?, email = ?, phone = ?, profile_url = ?, rate = ?, bio = ?, photo_ref = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		profile.FirstName, profile.LastName, profile.Email, nullString(profile.Phone),
		nullString(profile.ProfileURL), profile.Rate, nullString(profile.Bio),
		nullString(profile.PhotoRef), profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFound("profile %s not found", profile.ID)
	}

	return nil
}

// List retrieves profiles matching the given filters.
func (r *ProfileRepository) List(ctx context.Context, filters secondary.ProfileFilters) ([]*secondary.ProfileRecord, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE 1=1"
	args := []any{}

	if filters.Role != "" {
		query += " AND role = ?"
		args = append(args, filters.Role)
	}
	if filters.NameQuery != "" {
		query += " AND (first_name LIKE ? OR last_name LIKE ?)"
		pattern := "%" + filters.NameQuery + "%"
		args = append(args, pattern, pattern)
	}
	if filters.Skill != "" {
		query += " AND id IN (SELECT ps.profile_id FROM profile_skills ps JOIN skills s ON s.id = ps.skill_id WHERE s.name = ?)"
		args = append(args, filters.Skill)
	}
	if filters.Brand != "" {
		query += " AND id IN (SELECT pb.profile_id FROM profile_brands pb JOIN brands b ON b.id = pb.brand_id WHERE b.name = ?)"
		args = append(args, filters.Brand)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*secondary.ProfileRecord
	for rows.Next() {
		record, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, record)
	}

	return profiles, rows.Err()
}

// GetNextID returns the next available profile ID.
func (r *ProfileRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM profiles",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next profile ID: %w", err)
	}

	return fmt.Sprintf("PRO-%03d", maxID+1), nil
}

func scanProfile(row rowScanner) (*secondary.ProfileRecord, error) {
	var (
		authRef    sql.NullString
		phone      sql.NullString
		profileURL sql.NullString
		bio        sql.NullString
		photoRef   sql.NullString
		createdAt  time.Time
		updatedAt  time.Time
	)

	record := &secondary.ProfileRecord{}
	err := row.Scan(
		&record.ID, &authRef, &record.Role, &record.FirstName, &record.LastName,
		&record.Email, &phone, &profileURL, &record.Rate, &bio, &photoRef,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.AuthRef = authRef.String
	record.Phone = phone.String
	record.ProfileURL = profileURL.String
	record.Bio = bio.String
	record.PhotoRef = photoRef.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Ensure ProfileRepository implements the interface
var _ secondary.ProfileRepository = (*ProfileRepository)(nil)
