package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/techmarket/internal/core/principal"
	"github.com/example/techmarket/internal/ports/primary"
)

// MissionHandler serves the mission lifecycle endpoints.
type MissionHandler struct {
	missions primary.MissionService
}

type submitMissionRequest struct {
	TechnicianID string `json:"technician_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	RequestedFor string `json:"requested_for,omitempty"`
	GuestName    string `json:"guest_name,omitempty"`
	GuestEmail   string `json:"guest_email,omitempty"`
}

type missionResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	RequestedFor string `json:"requested_for,omitempty"`
	Status       string `json:"status"`
	ClientRef    string `json:"client_ref"`
	ClientName   string `json:"client_name,omitempty"`
	TechnicianID string `json:"technician_id"`
	CreatedAt    string `json:"created_at"`
	AcceptedAt   string `json:"accepted_at,omitempty"`
}

type submitMissionResponse struct {
	Mission    missionResponse `json:"mission"`
	GuestToken string          `json:"guest_token,omitempty"`
}

type respondRequest struct {
	Decision string `json:"decision"`
}

type contactCardResponse struct {
	ProfileID  string `json:"profile_id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`
}

// Submit creates a mission. Anonymous callers become guests: the response
// carries a minted token they must present on every later request.
func (h *MissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	caller, ok := callerFrom(r.Context())
	if !ok {
		caller = principal.Guest("", req.GuestName, req.GuestEmail)
	} else if caller.IsGuest() {
		caller.Name = req.GuestName
		caller.Email = req.GuestEmail
	}

	resp, err := h.missions.Submit(r.Context(), primary.SubmitMissionRequest{
		Caller:       caller,
		TechnicianID: req.TechnicianID,
		Title:        req.Title,
		Description:  req.Description,
		RequestedFor: req.RequestedFor,
	})
	if err != nil {
		sendFault(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, submitMissionResponse{
		Mission:    toMissionResponse(resp.Mission),
		GuestToken: resp.GuestToken,
	})
}

// List returns the caller's missions on the requested side.
func (h *MissionHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		sendJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	missions, err := h.missions.List(r.Context(), primary.ListMissionsRequest{
		Caller: caller,
		Role:   r.URL.Query().Get("role"),
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
	})
	if err != nil {
		sendFault(w, err)
		return
	}

	out := make([]missionResponse, len(missions))
	for i, m := range missions {
		out[i] = toMissionResponse(m)
	}
	sendJSON(w, http.StatusOK, out)
}

// Get returns a single mission, scoped to its parties.
func (h *MissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		sendJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
		return
	}

	mission, err := h.missions.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusOK, toMissionResponse(mission))
}

// Respond accepts or declines a pending mission.
func (h *MissionHandler) Respond(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		sendJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
		return
	}

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	mission, err := h.missions.Respond(r.Context(), primary.RespondRequest{
		Caller:    caller,
		MissionID: chi.URLParam(r, "id"),
		Decision:  req.Decision,
	})
	if err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusOK, toMissionResponse(mission))
}

// Complete marks an accepted mission completed.
func (h *MissionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		sendJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
		return
	}

	mission, err := h.missions.Complete(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusOK, toMissionResponse(mission))
}

// ContactDetails returns the counterparty contact card once unlocked.
func (h *MissionHandler) ContactDetails(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		sendJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
		return
	}

	card, err := h.missions.ContactDetails(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusOK, contactCardResponse{
		ProfileID:  card.ProfileID,
		Name:       card.Name,
		Email:      card.Email,
		Phone:      card.Phone,
		ProfileURL: card.ProfileURL,
	})
}

func toMissionResponse(m *primary.Mission) missionResponse {
	return missionResponse{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		RequestedFor: m.RequestedFor,
		Status:       m.Status,
		ClientRef:    m.ClientRef,
		ClientName:   m.ClientName,
		TechnicianID: m.TechnicianID,
		CreatedAt:    m.CreatedAt,
		AcceptedAt:   m.AcceptedAt,
	}
}
