package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/techmarket/internal/ports/primary"
)

// ProfileHandler serves the profile and technician catalog endpoints.
type ProfileHandler struct {
	profiles primary.ProfileService
	catalog  primary.CatalogService
}

type createProfileRequest struct {
	Role       string  `json:"role"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	ProfileURL string  `json:"profile_url,omitempty"`
	Rate       float64 `json:"rate,omitempty"`
	Bio        string  `json:"bio,omitempty"`
	PhotoRef   string  `json:"photo_ref,omitempty"`
}

type updateProfileRequest struct {
	FirstName  *string  `json:"first_name,omitempty"`
	LastName   *string  `json:"last_name,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	ProfileURL *string  `json:"profile_url,omitempty"`
	Rate       *float64 `json:"rate,omitempty"`
	Bio        *string  `json:"bio,omitempty"`
	PhotoRef   *string  `json:"photo_ref,omitempty"`
}

type profileResponse struct {
	ID         string   `json:"id"`
	Role       string   `json:"role"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	ProfileURL string   `json:"profile_url,omitempty"`
	Rate       float64  `json:"rate,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	PhotoRef   string   `json:"photo_ref,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Brands     []string `json:"brands,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

type tagRequest struct {
	Name string `json:"name"`
}

type tagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type profileTagsResponse struct {
	Skills []tagResponse `json:"skills"`
	Brands []tagResponse `json:"brands"`
}

// Create registers a new profile.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	profile, err := h.profiles.Create(r.Context(), primary.CreateProfileRequest{
		Role:       req.Role,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		ProfileURL: req.ProfileURL,
		Rate:       req.Rate,
		Bio:        req.Bio,
		PhotoRef:   req.PhotoRef,
	})
	if err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, toProfileResponse(profile))
}

// Get returns a profile by ID.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusOK, toProfileResponse(profile))
}

// Update modifies the caller's own profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		sendJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	profile, err := h.profiles.Update(r.Context(), primary.UpdateProfileRequest{
		Caller:     caller,
		ProfileID:  chi.URLParam(r, "id"),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		ProfileURL: req.ProfileURL,
		Rate:       req.Rate,
		Bio:        req.Bio,
		PhotoRef:   req.PhotoRef,
	})
	if err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusOK, toProfileResponse(profile))
}

// SearchTechnicians lists technicians for the public catalog.
func (h *ProfileHandler) SearchTechnicians(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	profiles, err := h.profiles.SearchTechnicians(r.Context(), primary.TechnicianSearchRequest{
		NameQuery: r.URL.Query().Get("q"),
		Skill:     r.URL.Query().Get("skill"),
		Brand:     r.URL.Query().Get("brand"),
		Limit:     limit,
	})
	if err != nil {
		sendFault(w, err)
		return
	}

	out := make([]profileResponse, len(profiles))
	for i, p := range profiles {
		out[i] = toProfileResponse(p)
	}
	sendJSON(w, http.StatusOK, out)
}

// Tags lists a profile's linked skills and brands.
func (h *ProfileHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.catalog.TagsFor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendFault(w, err)
		return
	}

	resp := profileTagsResponse{Skills: []tagResponse{}, Brands: []tagResponse{}}
	for _, t := range tags.Skills {
		resp.Skills = append(resp.Skills, tagResponse{ID: t.ID, Name: t.Name})
	}
	for _, t := range tags.Brands {
		resp.Brands = append(resp.Brands, tagResponse{ID: t.ID, Name: t.Name})
	}
	sendJSON(w, http.StatusOK, resp)
}

// AddSkill links a skill to the caller's technician profile.
func (h *ProfileHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	h.addTag(w, r, h.catalog.AddSkill)
}

// AddBrand links a brand to the caller's technician profile.
func (h *ProfileHandler) AddBrand(w http.ResponseWriter, r *http.Request) {
	h.addTag(w, r, h.catalog.AddBrand)
}

// RemoveSkill unlinks a skill from the caller's technician profile.
func (h *ProfileHandler) RemoveSkill(w http.ResponseWriter, r *http.Request) {
	h.removeTag(w, r, h.catalog.RemoveSkill)
}

// RemoveBrand unlinks a brand from the caller's technician profile.
func (h *ProfileHandler) RemoveBrand(w http.ResponseWriter, r *http.Request) {
	h.removeTag(w, r, h.catalog.RemoveBrand)
}

func (h *ProfileHandler) addTag(w http.ResponseWriter, r *http.Request, add func(ctx context.Context, req primary.TagRequest) (*primary.Tag, error)) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		sendJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
		return
	}

	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	tag, err := add(r.Context(), primary.TagRequest{
		Caller:    caller,
		ProfileID: chi.URLParam(r, "id"),
		Name:      req.Name,
	})
	if err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, tagResponse{ID: tag.ID, Name: tag.Name})
}

func (h *ProfileHandler) removeTag(w http.ResponseWriter, r *http.Request, remove func(ctx context.Context, req primary.TagRequest) error) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		sendJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
		return
	}

	if err := remove(r.Context(), primary.TagRequest{
		Caller:    caller,
		ProfileID: chi.URLParam(r, "id"),
		Name:      chi.URLParam(r, "name"),
	}); err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toProfileResponse(p *primary.Profile) profileResponse {
	return profileResponse{
		ID:         p.ID,
		Role:       p.Role,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Email:      p.Email,
		Phone:      p.Phone,
		ProfileURL: p.ProfileURL,
		Rate:       p.Rate,
		Bio:        p.Bio,
		PhotoRef:   p.PhotoRef,
		Skills:     p.Skills,
		Brands:     p.Brands,
		CreatedAt:  p.CreatedAt,
	}
}
