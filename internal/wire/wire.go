// Package wire provides dependency injection for the application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"log"
	"sync"

	"github.com/example/techmarket/internal/adapters/identity"
	"github.com/example/techmarket/internal/adapters/notify"
	"github.com/example/techmarket/internal/adapters/sqlite"
	"github.com/example/techmarket/internal/app"
	appconfig "github.com/example/techmarket/internal/config"
	"github.com/example/techmarket/internal/db"
	"github.com/example/techmarket/internal/ports/primary"
	"github.com/example/techmarket/internal/ports/secondary"
)

var (
	cfg              *appconfig.Config
	database         *sql.DB
	missionService   primary.MissionService
	messageService   primary.MessageService
	profileService   primary.ProfileService
	catalogService   primary.CatalogService
	identityProvider secondary.IdentityProvider
	once             sync.Once
)

// Config returns the loaded runtime configuration.
func Config() *appconfig.Config {
	once.Do(initServices)
	return cfg
}

// DB returns the shared database connection.
func DB() *sql.DB {
	once.Do(initServices)
	return database
}

// MissionService returns the singleton MissionService instance.
func MissionService() primary.MissionService {
	once.Do(initServices)
	return missionService
}

// MessageService returns the singleton MessageService instance.
func MessageService() primary.MessageService {
	once.Do(initServices)
	return messageService
}

// ProfileService returns the singleton ProfileService instance.
func ProfileService() primary.ProfileService {
	once.Do(initServices)
	return profileService
}

// CatalogService returns the singleton CatalogService instance.
func CatalogService() primary.CatalogService {
	once.Do(initServices)
	return catalogService
}

// IdentityProvider returns the singleton identity provider.
func IdentityProvider() secondary.IdentityProvider {
	once.Do(initServices)
	return identityProvider
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	loaded, err := appconfig.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	cfg = loaded

	database, err = db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	missionRepo := sqlite.NewMissionRepository(database)
	messageRepo := sqlite.NewMessageRepository(database)
	profileRepo := sqlite.NewProfileRepository(database)
	tagRepo := sqlite.NewTagRepository(database)

	notifier := notify.NewLogNotifier(nil)
	identityProvider = identity.NewManager(cfg.JWTSecret, cfg.TokenTTL())

	// Services (primary ports implementation)
	missionService = app.NewMissionService(missionRepo, profileRepo, notifier)
	messageService = app.NewMessageService(messageRepo, missionRepo, notifier)
	profileService = app.NewProfileService(profileRepo, tagRepo)
	catalogService = app.NewCatalogService(tagRepo, profileRepo)
}
