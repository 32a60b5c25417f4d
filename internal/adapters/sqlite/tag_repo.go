package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/techmarket/internal/core/fault"
	"github.com/example/techmarket/internal/ports/secondary"
)

// TagRepository implements secondary.TagRepository with SQLite, backing both
// the skills and brands tables.
type TagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new SQLite tag repository.
func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

// EnsureSkill returns the skill with the given name, creating it if absent.
func (r *TagRepository) EnsureSkill(ctx context.Context, name string) (*secondary.TagRecord, error) {
	return r.ensureTag(ctx, "skills", "SKL", name)
}

// EnsureBrand returns the brand with the given name, creating it if absent.
func (r *TagRepository) EnsureBrand(ctx context.Context, name string) (*secondary.TagRecord, error) {
	return r.ensureTag(ctx, "brands", "BRD", name)
}

func (r *TagRepository) ensureTag(ctx context.Context, table, prefix, name string) (*secondary.TagRecord, error) {
	if existing, err := r.getTagByName(ctx, table, name); err == nil {
		return existing, nil
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	var maxID int
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM %s", table),
	).Scan(&maxID)
	if err != nil {
		return nil, fmt.Errorf("failed to get next tag ID: %w", err)
	}

	id := fmt.Sprintf("%s-%03d", prefix, maxID+1)
	_, err = r.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (id, name) VALUES (?, ?)", table),
		id, name,
	)
	if err != nil {
		// A concurrent insert of the same name loses the UNIQUE race;
		// fall back to reading the winner.
		if existing, getErr := r.getTagByName(ctx, table, name); getErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return r.getTagByName(ctx, table, name)
}

// FindSkill retrieves a skill by name.
func (r *TagRepository) FindSkill(ctx context.Context, name string) (*secondary.TagRecord, error) {
	record, err := r.getTagByName(ctx, "skills", name)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound("skill %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find skill: %w", err)
	}
	return record, nil
}

// FindBrand retrieves a brand by name.
func (r *TagRepository) FindBrand(ctx context.Context, name string) (*secondary.TagRecord, error) {
	record, err := r.getTagByName(ctx, "brands", name)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound("brand %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find brand: %w", err)
	}
	return record, nil
}

func (r *TagRepository) getTagByName(ctx context.Context, table, name string) (*secondary.TagRecord, error) {
	var createdAt time.Time
	record := &secondary.TagRecord{}
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id, name, created_at FROM %s WHERE name = ?", table),
		name,
	).Scan(&record.ID, &record.Name, &createdAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// LinkSkill associates a skill with a technician profile. Idempotent.
func (r *TagRepository) LinkSkill(ctx context.Context, profileID, skillID string) error {
	return r.link(ctx, "profile_skills", "skill_id", profileID, skillID)
}

// UnlinkSkill removes a skill association.
func (r *TagRepository) UnlinkSkill(ctx context.Context, profileID, skillID string) error {
	return r.unlink(ctx, "profile_skills", "skill_id", profileID, skillID)
}

// LinkBrand associates a brand with a technician profile. Idempotent.
func (r *TagRepository) LinkBrand(ctx context.Context, profileID, brandID string) error {
	return r.link(ctx, "profile_brands", "brand_id", profileID, brandID)
}

// UnlinkBrand removes a brand association.
func (r *TagRepository) UnlinkBrand(ctx context.Context, profileID, brandID string) error {
	return r.unlink(ctx, "profile_brands", "brand_id", profileID, brandID)
}

func (r *TagRepository) link(ctx context.Context, table, tagCol, profileID, tagID string) error {
	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf("INSERT OR IGNORE INTO %s (profile_id, %s) VALUES (?, ?)", table, tagCol),
		profileID, tagID,
	)
	if err != nil {
		return fmt.Errorf("failed to link tag: %w", err)
	}
	return nil
}

func (r *TagRepository) unlink(ctx context.Context, table, tagCol, profileID, tagID string) error {
	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE profile_id = ? AND %s = ?", table, tagCol),
		profileID, tagID,
	)
	if err != nil {
		return fmt.Errorf("failed to unlink tag: %w", err)
	}
	return nil
}

// SkillsForProfile lists the skills linked to a profile.
func (r *TagRepository) SkillsForProfile(ctx context.Context, profileID string) ([]*secondary.TagRecord, error) {
	return r.tagsForProfile(ctx, "skills", "profile_skills", "skill_id", profileID)
}

// BrandsForProfile lists the brands linked to a profile.
func (r *TagRepository) BrandsForProfile(ctx context.Context, profileID string) ([]*secondary.TagRecord, error) {
	return r.tagsForProfile(ctx, "brands", "profile_brands", "brand_id", profileID)
}

func (r *TagRepository) tagsForProfile(ctx context.Context, tagTable, linkTable, tagCol, profileID string) ([]*secondary.TagRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf("SELECT t.id, t.name, t.created_at FROM %s t JOIN %s l ON l.%s = t.id WHERE l.profile_id = ? ORDER BY t.name", tagTable, linkTable, tagCol),
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []*secondary.TagRecord
	for rows.Next() {
		var createdAt time.Time
		record := &secondary.TagRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		tags = append(tags, record)
	}

	return tags, rows.Err()
}

// Ensure TagRepository implements the interface
var _ secondary.TagRepository = (*TagRepository)(nil)
