package database

import (
	"notes-sync/models"
	"time"
)

// ==================== SYNC OPERATIONS ====================

// GetChangedNotes returns all notes owned by userID whose updated_at is
// strictly after since, in ascending updated_at order. The stable order
// lets a client that failed mid-apply re-request the same cursor and
// replay the delta.
func (r *Repository) GetChangedNotes(userID string, since time.Time) ([]models.Note, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE user_id = ? AND updated_at > ?
		ORDER BY updated_at ASC
	`, userID, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(
			&note.ID, &note.UserID, &note.Title, &note.Content,
			&note.CreatedAt, &note.UpdatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach tag sets after the row cursor is drained; sqlite dislikes
	// nested queries on one connection while rows are open
	for i := range notes {
		tags, err := getNoteTags(r.db, userID, notes[i].ID)
		if err != nil {
			return nil, err
		}
		notes[i].Tags = tags
	}

	return notes, nil
}

// GetDeletedNoteIDs returns ids from the tombstone log deleted strictly
// after since. Order is unspecified.
func (r *Repository) GetDeletedNoteIDs(userID string, since time.Time) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT note_id FROM deleted_notes
		WHERE user_id = ? AND deleted_at > ?
	`, userID, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// CountTombstones reports the size of a user's tombstone log.
func (r *Repository) CountTombstones(userID string) (int, error) {
	var n int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM deleted_notes WHERE user_id = ?
	`, userID).Scan(&n)
	return n, err
}
