package services

import (
	"errors"
	"notes-sync/database"
	"notes-sync/models"
	"time"
)

// With no stored cursor, a first sync pulls everything touched within the
// last year. Notes idle for longer than that are missed on a genuinely
// fresh device; kept for compatibility with existing clients.
const defaultSyncWindow = 365 * 24 * time.Hour

// NoteService handles business logic for note mutations and sync pulls
type NoteService struct {
	repo NoteRepository
}

// NewNoteService creates a new note service
func NewNoteService(repo NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

// Create inserts a new note with empty content and no tags.
// Not idempotent: a repeat with the same id fails with ErrNoteConflict.
func (ns *NoteService) Create(userID, noteID string, req *models.CreateNoteRequest) (*models.Note, error) {
	note, err := ns.repo.CreateNote(userID, noteID, req)
	if errors.Is(err, database.ErrNoteExists) {
		return nil, ErrNoteConflict
	}
	return note, err
}

// Import upserts a full note including its tag set. Safe to retry.
func (ns *NoteService) Import(userID, noteID string, req *models.ImportNoteRequest) (*models.Note, error) {
	return ns.repo.ImportNote(userID, noteID, req)
}

// Get retrieves a note scoped to its owner
func (ns *NoteService) Get(userID, noteID string) (*models.Note, error) {
	note, err := ns.repo.GetNote(userID, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// Update applies a partial update to an existing note
func (ns *NoteService) Update(userID, noteID string, req *models.UpdateNoteRequest) (*models.Note, error) {
	note, err := ns.repo.UpdateNote(userID, noteID, req)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// Delete removes a note and records a tombstone. Idempotent: deleting an
// id that does not exist succeeds without writing anything.
func (ns *NoteService) Delete(userID, noteID string) error {
	return ns.repo.DeleteNote(userID, noteID)
}

// Sync produces the delta since the client's cursor: notes changed after
// it in ascending updated_at order plus ids deleted after it. The returned
// CurrentTime is captured before the reads and becomes the client's next
// cursor, so anything committed during the read phase is replayed next
// pull rather than lost. The server holds no per-device state; DeviceID is
// accepted for request logging only.
func (ns *NoteService) Sync(userID string, req *models.SyncRequest) (*models.SyncResponse, error) {
	now := time.Now().UTC()

	since := now.Add(-defaultSyncWindow)
	if req.LastSyncTime != nil {
		since = *req.LastSyncTime
	}

	notes, err := ns.repo.GetChangedNotes(userID, since)
	if err != nil {
		return nil, err
	}

	deletedIDs, err := ns.repo.GetDeletedNoteIDs(userID, since)
	if err != nil {
		return nil, err
	}

	return &models.SyncResponse{
		Notes:          notes,
		DeletedNoteIDs: deletedIDs,
		CurrentTime:    now,
	}, nil
}
