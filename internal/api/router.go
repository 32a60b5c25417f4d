// Package api exposes the application services over HTTP. Routing uses
// chi; every handler resolves the caller's principal before delegating to
// a service.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/example/techmarket/internal/ports/primary"
	"github.com/example/techmarket/internal/ports/secondary"
	"github.com/example/techmarket/internal/version"
)

var startTime = time.Now()

// Dependencies carries the services the router exposes.
type Dependencies struct {
	Missions primary.MissionService
	Messages primary.MessageService
	Profiles primary.ProfileService
	Catalog  primary.CatalogService
	Identity secondary.IdentityProvider
}

type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// NewRouter builds the HTTP handler for the API.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", guestTokenHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth)

	auth := &AuthHandler{identity: deps.Identity, profiles: deps.Profiles}
	r.Post("/api/auth/token", auth.IssueToken)

	withCaller := callerResolver(deps.Identity)

	missions := &MissionHandler{missions: deps.Missions}
	messages := &MessageHandler{messages: deps.Messages}
	profiles := &ProfileHandler{profiles: deps.Profiles, catalog: deps.Catalog}

	r.Group(func(r chi.Router) {
		r.Use(withCaller)

		r.Post("/api/missions", missions.Submit)
		r.Get("/api/missions", missions.List)
		r.Get("/api/missions/{id}", missions.Get)
		r.Post("/api/missions/{id}/respond", missions.Respond)
		r.Post("/api/missions/{id}/complete", missions.Complete)
		r.Get("/api/missions/{id}/contact", missions.ContactDetails)

		r.Post("/api/missions/{id}/messages", messages.Post)
		r.Get("/api/missions/{id}/messages", messages.Thread)
		r.Post("/api/missions/{id}/messages/read", messages.MarkRead)
		r.Get("/api/missions/{id}/messages/unread", messages.UnreadCount)

		r.Post("/api/profiles", profiles.Create)
		r.Get("/api/profiles/{id}", profiles.Get)
		r.Patch("/api/profiles/{id}", profiles.Update)
		r.Get("/api/profiles/{id}/tags", profiles.Tags)
		r.Post("/api/profiles/{id}/skills", profiles.AddSkill)
		r.Delete("/api/profiles/{id}/skills/{name}", profiles.RemoveSkill)
		r.Post("/api/profiles/{id}/brands", profiles.AddBrand)
		r.Delete("/api/profiles/{id}/brands/{name}", profiles.RemoveBrand)

		r.Get("/api/technicians", profiles.SearchTechnicians)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Version:   version.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
