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

const (
	RoleClient     = "client"
	RoleTechnician = "technician"
)

// ProfileServiceImpl implements the ProfileService interface.
type ProfileServiceImpl struct {
	profileRepo secondary.ProfileRepository
	tagRepo     secondary.TagRepository
}

// NewProfileService creates a new ProfileService with injected dependencies.
func NewProfileService(profileRepo secondary.ProfileRepository, tagRepo secondary.TagRepository) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		tagRepo:     tagRepo,
	}
}

// Create registers a new profile. The role tag is fixed here and never
// changes afterwards.
func (s *ProfileServiceImpl) Create(ctx context.Context, req primary.CreateProfileRequest) (*primary.Profile, error) {
	if req.Role != RoleClient && req.Role != RoleTechnician {
		return nil, fault.Validation("role must be %q or %q", RoleClient, RoleTechnician)
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fault.Validation("first and last name are required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, fault.Validation("email is required")
	}
	if req.Rate < 0 {
		return nil, fault.Validation("rate cannot be negative")
	}

	rate := req.Rate
	if req.Role == RoleClient {
		rate = 0
	}

	nextID, err := s.profileRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile ID: %w", err)
	}

	record := &secondary.ProfileRecord{
		ID:         nextID,
		AuthRef:    req.AuthRef,
		Role:       req.Role,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		ProfileURL: req.ProfileURL,
		Rate:       rate,
		Bio:        req.Bio,
		PhotoRef:   req.PhotoRef,
	}
	if err := s.profileRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	created, err := s.profileRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created profile: %w", err)
	}
	return s.recordToProfile(ctx, created, true)
}

// Get retrieves a profile by ID, with its linked skills and brands.
func (s *ProfileServiceImpl) Get(ctx context.Context, profileID string) (*primary.Profile, error) {
	record, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.recordToProfile(ctx, record, true)
}

// Update modifies the caller's own profile. Nil fields stay unchanged; the
// role tag is immutable.
func (s *ProfileServiceImpl) Update(ctx context.Context, req primary.UpdateProfileRequest) (*primary.Profile, error) {
	if err := req.Caller.Validate(); err != nil {
		return nil, err
	}
	if req.Caller.Kind != principal.KindAccount || req.Caller.ProfileID != req.ProfileID {
		return nil, fault.Forbidden("only the profile owner may update profile %s", req.ProfileID)
	}

	record, err := s.profileRepo.GetByID(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		record.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		record.LastName = *req.LastName
	}
	if req.Email != nil {
		record.Email = *req.Email
	}
	if req.Phone != nil {
		record.Phone = *req.Phone
	}
	if req.ProfileURL != nil {
		record.ProfileURL = *req.ProfileURL
	}
	if req.Rate != nil {
		if *req.Rate < 0 {
			return nil, fault.Validation("rate cannot be negative")
		}
		record.Rate = *req.Rate
	}
	if req.Bio != nil {
		record.Bio = *req.Bio
	}
	if req.PhotoRef != nil {
		record.PhotoRef = *req.PhotoRef
	}

	if strings.TrimSpace(record.FirstName) == "" || strings.TrimSpace(record.LastName) == "" {
		return nil, fault.Validation("first and last name are required")
	}
	if strings.TrimSpace(record.Email) == "" {
		return nil, fault.Validation("email is required")
	}

	if err := s.profileRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	updated, err := s.profileRepo.GetByID(ctx, req.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated profile: %w", err)
	}
	return s.recordToProfile(ctx, updated, true)
}

// SearchTechnicians lists technician profiles for the catalog. Contact
// fields are blanked: they unlock per mission, through acceptance, never
// through the catalog.
func (s *ProfileServiceImpl) SearchTechnicians(ctx context.Context, req primary.TechnicianSearchRequest) ([]*primary.Profile, error) {
	records, err := s.profileRepo.List(ctx, secondary.ProfileFilters{
		Role:      RoleTechnician,
		NameQuery: req.NameQuery,
		Skill:     req.Skill,
		Brand:     req.Brand,
		Limit:     req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search technicians: %w", err)
	}

	profiles := make([]*primary.Profile, len(records))
	for i, r := range records {
		profile, err := s.recordToProfile(ctx, r, false)
		if err != nil {
			return nil, err
		}
		profiles[i] = profile
	}
	return profiles, nil
}

func (s *ProfileServiceImpl) recordToProfile(ctx context.Context, r *secondary.ProfileRecord, includeContact bool) (*primary.Profile, error) {
	profile := &primary.Profile{
		ID:        r.ID,
		Role:      r.Role,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Rate:      r.Rate,
		Bio:       r.Bio,
		PhotoRef:  r.PhotoRef,
		CreatedAt: r.CreatedAt,
	}
	if includeContact {
		profile.Email = r.Email
		profile.Phone = r.Phone
		profile.ProfileURL = r.ProfileURL
	}

	if r.Role == RoleTechnician {
		skills, err := s.tagRepo.SkillsForProfile(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load skills: %w", err)
		}
		for _, t := range skills {
			profile.Skills = append(profile.Skills, t.Name)
		}

		brands, err := s.tagRepo.BrandsForProfile(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load brands: %w", err)
		}
		for _, t := range brands {
			profile.Brands = append(profile.Brands, t.Name)
		}
	}

	return profile, nil
}

// Ensure ProfileServiceImpl implements the interface.
var _ primary.ProfileService = (*ProfileServiceImpl)(nil)
