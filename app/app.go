package app

import (
	"log/slog"
	"notes-sync/database"
	"notes-sync/services"
	"notes-sync/session"
	"notes-sync/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Repo         *database.Repository
	Notes        *services.NoteService
	SessionStore *session.Store
	Validator    *validator.Validator
	Logger       *slog.Logger
}

// New creates a new App instance with all dependencies
func New(repo *database.Repository, sessionStore *session.Store, logger *slog.Logger) *App {
	return &App{
		Repo:         repo,
		Notes:        services.NewNoteService(repo),
		SessionStore: sessionStore,
		Validator:    validator.New(),
		Logger:       logger,
	}
}
