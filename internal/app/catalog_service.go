package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/techmarket/internal/core/fault"
	"github.com/example/techmarket/internal/core/principal"
	"github.com/example/techmarket/internal/ports/primary"
	"github.com/example/techmarket/internal/ports/secondary"
)

// CatalogServiceImpl implements the CatalogService interface.
type CatalogServiceImpl struct {
	tagRepo     secondary.TagRepository
	profileRepo secondary.ProfileRepository
}

// NewCatalogService creates a new CatalogService with injected dependencies.
func NewCatalogService(tagRepo secondary.TagRepository, profileRepo secondary.ProfileRepository) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		tagRepo:     tagRepo,
		profileRepo: profileRepo,
	}
}

// AddSkill links a skill to the caller's technician profile, creating the
// skill on first use.
func (s *CatalogServiceImpl) AddSkill(ctx context.Context, req primary.TagRequest) (*primary.Tag, error) {
	name, err := s.authorizeTagChange(ctx, req)
	if err != nil {
		return nil, err
	}

	record, err := s.tagRepo.EnsureSkill(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure skill: %w", err)
	}
	if err := s.tagRepo.LinkSkill(ctx, req.ProfileID, record.ID); err != nil {
		return nil, fmt.Errorf("failed to link skill: %w", err)
	}
	return &primary.Tag{ID: record.ID, Name: record.Name}, nil
}

// RemoveSkill unlinks a skill from the caller's technician profile.
func (s *CatalogServiceImpl) RemoveSkill(ctx context.Context, req primary.TagRequest) error {
	name, err := s.authorizeTagChange(ctx, req)
	if err != nil {
		return err
	}

	record, err := s.tagRepo.FindSkill(ctx, name)
	if err != nil {
		return err
	}
	return s.tagRepo.UnlinkSkill(ctx, req.ProfileID, record.ID)
}

// AddBrand links a brand to the caller's technician profile, creating the
// brand on first use.
func (s *CatalogServiceImpl) AddBrand(ctx context.Context, req primary.TagRequest) (*primary.Tag, error) {
	name, err := s.authorizeTagChange(ctx, req)
	if err != nil {
		return nil, err
	}

	record, err := s.tagRepo.EnsureBrand(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure brand: %w", err)
	}
	if err := s.tagRepo.LinkBrand(ctx, req.ProfileID, record.ID); err != nil {
		return nil, fmt.Errorf("failed to link brand: %w", err)
	}
	return &primary.Tag{ID: record.ID, Name: record.Name}, nil
}

// RemoveBrand unlinks a brand from the caller's technician profile.
func (s *CatalogServiceImpl) RemoveBrand(ctx context.Context, req primary.TagRequest) error {
	name, err := s.authorizeTagChange(ctx, req)
	if err != nil {
		return err
	}

	record, err := s.tagRepo.FindBrand(ctx, name)
	if err != nil {
		return err
	}
	return s.tagRepo.UnlinkBrand(ctx, req.ProfileID, record.ID)
}

// TagsFor lists the skills and brands linked to a profile.
func (s *CatalogServiceImpl) TagsFor(ctx context.Context, profileID string) (*primary.ProfileTags, error) {
	if _, err := s.profileRepo.GetByID(ctx, profileID); err != nil {
		return nil, err
	}

	skills, err := s.tagRepo.SkillsForProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	brands, err := s.tagRepo.BrandsForProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}

	tags := &primary.ProfileTags{}
	for _, t := range skills {
		tags.Skills = append(tags.Skills, primary.Tag{ID: t.ID, Name: t.Name})
	}
	for _, t := range brands {
		tags.Brands = append(tags.Brands, primary.Tag{ID: t.ID, Name: t.Name})
	}
	return tags, nil
}

// authorizeTagChange validates a link/unlink request: the caller must own
// the profile and the profile must be a technician. Returns the trimmed
// tag name.
func (s *CatalogServiceImpl) authorizeTagChange(ctx context.Context, req primary.TagRequest) (string, error) {
	if err := req.Caller.Validate(); err != nil {
		return "", err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", fault.Validation("tag name is required")
	}
	if req.Caller.Kind != principal.KindAccount || req.Caller.ProfileID != req.ProfileID {
		return "", fault.Forbidden("only the profile owner may change tags on profile %s", req.ProfileID)
	}

	profile, err := s.profileRepo.GetByID(ctx, req.ProfileID)
	if err != nil {
		return "", err
	}
	if profile.Role != RoleTechnician {
		return "", fault.Validation("tags apply to technician profiles only")
	}
	return name, nil
}

// Ensure CatalogServiceImpl implements the interface.
var _ primary.CatalogService = (*CatalogServiceImpl)(nil)
