package session

import (
	"database/sql"
	"log/slog"
	"notes-sync/models"
	"time"

	"github.com/google/uuid"
)

const sessionTTL = 30 * 24 * time.Hour

// Store persists sessions in the shared sqlite database. It only issues
// and resolves opaque session ids; validating the identity behind them is
// the upstream identity provider's job.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create issues a new session for an already-authenticated user id.
func (s *Store) Create(userID string) (*models.Session, error) {
	now := time.Now().UTC()
	sess := &models.Session{
		ID:         uuid.New().String(),
		UserID:     userID,
		CreatedAt:  now,
		LastUsedAt: now,
		ExpiresAt:  now.Add(sessionTTL),
	}

	_, err := s.db.Exec(`
		INSERT INTO sessions (id, user_id, created_at, last_used_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`, sess.ID, sess.UserID, sess.CreatedAt, sess.LastUsedAt, sess.ExpiresAt)
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// Get resolves a session id. Returns (nil, nil) for unknown or expired
// sessions; expired rows are left for the cleanup routine.
func (s *Store) Get(sessionID string) (*models.Session, error) {
	var sess models.Session
	err := s.db.QueryRow(`
		SELECT id, user_id, created_at, last_used_at, expires_at
		FROM sessions WHERE id = ?
	`, sessionID).Scan(
		&sess.ID, &sess.UserID, &sess.CreatedAt, &sess.LastUsedAt, &sess.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(sess.ExpiresAt) {
		return nil, nil
	}

	// Best effort; a failed touch never blocks the request
	_, _ = s.db.Exec(`UPDATE sessions SET last_used_at = ? WHERE id = ?`,
		time.Now().UTC(), sessionID)

	return &sess, nil
}

func (s *Store) Delete(sessionID string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, sessionID)
	return err
}

// CleanupExpired removes sessions past their expiry and reports how many
// rows were swept.
func (s *Store) CleanupExpired() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupRoutine sweeps expired sessions hourly until stop is closed.
// It shares only the connection pool with the mutation and sync paths.
func (s *Store) StartCleanupRoutine(logger *slog.Logger, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				swept, err := s.CleanupExpired()
				if err != nil {
					logger.Error("session cleanup failed", "error", err)
					continue
				}
				if swept > 0 {
					logger.Info("expired sessions removed", "count", swept)
				}
			case <-stop:
				return
			}
		}
	}()
}
