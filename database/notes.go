package database

import (
	"database/sql"
	"errors"
	"notes-sync/models"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// ==================== NOTE OPERATIONS ====================
//
// All timestamps are normalized to UTC before they hit the driver so the
// text encoding sqlite stores compares chronologically.

// CreateNote inserts a new note with empty content and no tags.
// Returns ErrNoteExists when the owner already holds a note with this id.
func (r *Repository) CreateNote(userID, noteID string, req *models.CreateNoteRequest) (*models.Note, error) {
	createdAt := req.CreatedAt.UTC()

	_, err := r.db.Exec(`
		INSERT INTO notes (id, user_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, '', ?, ?)
	`, noteID, userID, req.Title, createdAt, createdAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return nil, ErrNoteExists
		}
		return nil, err
	}

	return &models.Note{
		ID:        noteID,
		UserID:    userID,
		Title:     req.Title,
		Content:   "",
		Tags:      []string{},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// ImportNote upserts a full note: the row is inserted or fully overwritten
// and the tag set is replaced, all in one transaction. Repeating the same
// import leaves the same final state.
func (r *Repository) ImportNote(userID, noteID string, req *models.ImportNoteRequest) (*models.Note, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	createdAt := req.CreatedAt.UTC()
	updatedAt := req.UpdatedAt.UTC()

	if _, err := tx.Exec(`
		INSERT INTO notes (id, user_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, noteID, userID, req.Title, req.Content, createdAt, updatedAt); err != nil {
		return nil, err
	}

	if err := replaceNoteTags(tx, userID, noteID, req.Tags); err != nil {
		return nil, err
	}

	// Read the tag set back so the response carries the deduplicated set
	tags, err := getNoteTags(tx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.Note{
		ID:        noteID,
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// GetNote retrieves a single note scoped to its owner.
// Returns (nil, nil) when no note matches.
func (r *Repository) GetNote(userID, noteID string) (*models.Note, error) {
	var note models.Note
	err := r.db.QueryRow(`
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE user_id = ? AND id = ?
	`, userID, noteID).Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content,
		&note.CreatedAt, &note.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tags, err := getNoteTags(r.db, userID, noteID)
	if err != nil {
		return nil, err
	}
	note.Tags = tags

	return &note, nil
}

// UpdateNote applies a partial update: nil fields keep their stored value,
// a non-nil Tags replaces the whole tag set. updated_at is always set to
// the caller-supplied value, with no ordering check against the stored one.
// Returns (nil, nil) when no note matches.
func (r *Repository) UpdateNote(userID, noteID string, req *models.UpdateNoteRequest) (*models.Note, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE notes
		SET title = COALESCE(?, title),
			content = COALESCE(?, content),
			updated_at = ?
		WHERE user_id = ? AND id = ?
	`, req.Title, req.Content, req.UpdatedAt.UTC(), userID, noteID)
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	if req.Tags != nil {
		if err := replaceNoteTags(tx, userID, noteID, *req.Tags); err != nil {
			return nil, err
		}
	}

	var note models.Note
	if err := tx.QueryRow(`
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE user_id = ? AND id = ?
	`, userID, noteID).Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content,
		&note.CreatedAt, &note.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tags, err := getNoteTags(tx, userID, noteID)
	if err != nil {
		return nil, err
	}
	note.Tags = tags

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &note, nil
}

// DeleteNote removes a note, its tags, and records a tombstone, all in one
// transaction. Deleting a note that does not exist is a no-op: no tombstone
// is written and no error is returned.
func (r *Repository) DeleteNote(userID, noteID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`
		SELECT COUNT(*) FROM notes WHERE user_id = ? AND id = ?
	`, userID, noteID).Scan(&exists); err != nil {
		return err
	}

	if exists == 0 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
		INSERT INTO deleted_notes (note_id, user_id, deleted_at) VALUES (?, ?, ?)
	`, noteID, userID, time.Now().UTC()); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		DELETE FROM notes WHERE user_id = ? AND id = ?
	`, userID, noteID); err != nil {
		return err
	}

	// sqlite has no cascade from notes to note_tags here, so mirror it
	if _, err := tx.Exec(`
		DELETE FROM note_tags WHERE user_id = ? AND note_id = ?
	`, userID, noteID); err != nil {
		return err
	}

	return tx.Commit()
}
