package services

import (
	"notes-sync/models"
	"time"
)

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	CreateNote(userID, noteID string, req *models.CreateNoteRequest) (*models.Note, error)
	ImportNote(userID, noteID string, req *models.ImportNoteRequest) (*models.Note, error)
	GetNote(userID, noteID string) (*models.Note, error)
	UpdateNote(userID, noteID string, req *models.UpdateNoteRequest) (*models.Note, error)
	DeleteNote(userID, noteID string) error
	GetChangedNotes(userID string, since time.Time) ([]models.Note, error)
	GetDeletedNoteIDs(userID string, since time.Time) ([]string, error)
}
