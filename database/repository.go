package database

import (
	"database/sql"
	"errors"
)

// ErrNoteExists is returned by CreateNote when the (user, id) pair is
// already taken.
var ErrNoteExists = errors.New("note already exists")

type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// getNoteTags loads the current tag set for a note. Runs against q so it
// can observe uncommitted rows when called inside a transaction.
func getNoteTags(q queryer, userID, noteID string) ([]string, error) {
	rows, err := q.Query(`
		SELECT tag FROM note_tags
		WHERE user_id = ? AND note_id = ?
	`, userID, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice so an untagged note serializes as []
	tags := make([]string, 0)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

// replaceNoteTags rewrites the full tag set for a note: delete everything,
// insert the new set. Must run inside the caller's transaction.
func replaceNoteTags(tx *sql.Tx, userID, noteID string, tags []string) error {
	if _, err := tx.Exec(`
		DELETE FROM note_tags WHERE user_id = ? AND note_id = ?
	`, userID, noteID); err != nil {
		return err
	}

	for _, tag := range tags {
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO note_tags (user_id, note_id, tag) VALUES (?, ?, ?)
		`, userID, noteID, tag); err != nil {
			return err
		}
	}

	return nil
}

// queryer is satisfied by both *sql.Tx and the pooled handle
type queryer interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
