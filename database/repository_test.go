package database

import (
	"notes-sync/models"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "notes-sync-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	require.NoError(t, err)

	err = db.Migrate()
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, cleanup
}

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func strPtr(s string) *string { return &s }

func tagsPtr(tags ...string) *[]string { return &tags }

func TestCreateNote(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	createdAt := ts(t, "2024-01-01T00:00:00Z")

	t.Run("New note has empty content and no tags", func(t *testing.T) {
		note, err := repo.CreateNote("user-1", "n1", &models.CreateNoteRequest{
			Title:     "Groceries",
			CreatedAt: createdAt,
		})
		require.NoError(t, err)
		require.NotNil(t, note)

		assert.Equal(t, "n1", note.ID)
		assert.Equal(t, "user-1", note.UserID)
		assert.Equal(t, "Groceries", note.Title)
		assert.Empty(t, note.Content)
		assert.Empty(t, note.Tags)
		assert.True(t, note.UpdatedAt.Equal(note.CreatedAt))

		stored, err := repo.GetNote("user-1", "n1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Groceries", stored.Title)
		assert.Equal(t, []string{}, stored.Tags)
		assert.True(t, stored.CreatedAt.Equal(createdAt))
	})

	t.Run("Duplicate id for same owner fails with ErrNoteExists", func(t *testing.T) {
		_, err := repo.CreateNote("user-1", "n1", &models.CreateNoteRequest{
			Title:     "Again",
			CreatedAt: createdAt,
		})
		assert.ErrorIs(t, err, ErrNoteExists)
	})

	t.Run("Same id under a different owner is allowed", func(t *testing.T) {
		note, err := repo.CreateNote("user-2", "n1", &models.CreateNoteRequest{
			Title:     "Other user's note",
			CreatedAt: createdAt,
		})
		require.NoError(t, err)
		assert.Equal(t, "user-2", note.UserID)

		// First owner's note is untouched
		stored, err := repo.GetNote("user-1", "n1")
		require.NoError(t, err)
		assert.Equal(t, "Groceries", stored.Title)
	})
}

func TestGetNote(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	t.Run("Missing note returns nil without error", func(t *testing.T) {
		note, err := repo.GetNote("user-1", "nope")
		require.NoError(t, err)
		assert.Nil(t, note)
	})

	t.Run("Lookup is scoped to the owner", func(t *testing.T) {
		_, err := repo.CreateNote("user-1", "n1", &models.CreateNoteRequest{
			Title:     "Mine",
			CreatedAt: ts(t, "2024-01-01T00:00:00Z"),
		})
		require.NoError(t, err)

		note, err := repo.GetNote("user-2", "n1")
		require.NoError(t, err)
		assert.Nil(t, note)
	})
}

func TestImportNote(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	req := &models.ImportNoteRequest{
		Title:     "Imported",
		Content:   "body",
		Tags:      []string{"home", "errands"},
		CreatedAt: ts(t, "2024-01-01T00:00:00Z"),
		UpdatedAt: ts(t, "2024-01-02T00:00:00Z"),
	}

	t.Run("Import inserts a full note with tags", func(t *testing.T) {
		note, err := repo.ImportNote("user-1", "n1", req)
		require.NoError(t, err)

		assert.Equal(t, "Imported", note.Title)
		assert.Equal(t, "body", note.Content)
		assert.ElementsMatch(t, []string{"home", "errands"}, note.Tags)
		assert.True(t, note.UpdatedAt.Equal(req.UpdatedAt))
	})

	t.Run("Import is idempotent", func(t *testing.T) {
		again, err := repo.ImportNote("user-1", "n1", req)
		require.NoError(t, err)

		stored, err := repo.GetNote("user-1", "n1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, again.Title, stored.Title)
		assert.Equal(t, again.Content, stored.Content)
		assert.ElementsMatch(t, again.Tags, stored.Tags)
		assert.True(t, stored.UpdatedAt.Equal(req.UpdatedAt))
		assert.True(t, stored.CreatedAt.Equal(req.CreatedAt))
	})

	t.Run("Re-import overwrites everything and replaces the tag set", func(t *testing.T) {
		newer := &models.ImportNoteRequest{
			Title:     "Rewritten",
			Content:   "new body",
			Tags:      []string{"work"},
			CreatedAt: ts(t, "2024-02-01T00:00:00Z"),
			UpdatedAt: ts(t, "2024-02-02T00:00:00Z"),
		}
		_, err := repo.ImportNote("user-1", "n1", newer)
		require.NoError(t, err)

		stored, err := repo.GetNote("user-1", "n1")
		require.NoError(t, err)
		assert.Equal(t, "Rewritten", stored.Title)
		assert.Equal(t, "new body", stored.Content)
		assert.Equal(t, []string{"work"}, stored.Tags)
	})

	t.Run("Duplicate tags in the payload collapse to one row", func(t *testing.T) {
		_, err := repo.ImportNote("user-1", "n2", &models.ImportNoteRequest{
			Title:     "Dupes",
			Tags:      []string{"a", "a", "b"},
			CreatedAt: ts(t, "2024-01-01T00:00:00Z"),
			UpdatedAt: ts(t, "2024-01-01T00:00:00Z"),
		})
		require.NoError(t, err)

		stored, err := repo.GetNote("user-1", "n2")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, stored.Tags)
	})
}

func TestUpdateNote(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	_, err := repo.ImportNote("user-1", "n1", &models.ImportNoteRequest{
		Title:     "Title",
		Content:   "original",
		Tags:      []string{"keep"},
		CreatedAt: ts(t, "2024-01-01T00:00:00Z"),
		UpdatedAt: ts(t, "2024-01-01T00:00:00Z"),
	})
	require.NoError(t, err)

	t.Run("Updating content preserves title and tags", func(t *testing.T) {
		note, err := repo.UpdateNote("user-1", "n1", &models.UpdateNoteRequest{
			Content:   strPtr("x"),
			UpdatedAt: ts(t, "2024-01-02T00:00:00Z"),
		})
		require.NoError(t, err)
		require.NotNil(t, note)

		assert.Equal(t, "Title", note.Title)
		assert.Equal(t, "x", note.Content)
		assert.Equal(t, []string{"keep"}, note.Tags)
		assert.True(t, note.UpdatedAt.Equal(ts(t, "2024-01-02T00:00:00Z")))
	})

	t.Run("Updating tags replaces the whole set", func(t *testing.T) {
		note, err := repo.UpdateNote("user-1", "n1", &models.UpdateNoteRequest{
			Tags:      tagsPtr("home"),
			UpdatedAt: ts(t, "2024-01-03T00:00:00Z"),
		})
		require.NoError(t, err)

		assert.Equal(t, "Title", note.Title)
		assert.Equal(t, []string{"home"}, note.Tags)

		stored, err := repo.GetNote("user-1", "n1")
		require.NoError(t, err)
		assert.Equal(t, []string{"home"}, stored.Tags)
	})

	t.Run("Empty tag list clears the set", func(t *testing.T) {
		note, err := repo.UpdateNote("user-1", "n1", &models.UpdateNoteRequest{
			Tags:      tagsPtr(),
			UpdatedAt: ts(t, "2024-01-04T00:00:00Z"),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{}, note.Tags)
	})

	t.Run("Stale updated_at is applied without ordering check", func(t *testing.T) {
		note, err := repo.UpdateNote("user-1", "n1", &models.UpdateNoteRequest{
			Title:     strPtr("Stale write"),
			UpdatedAt: ts(t, "2023-06-01T00:00:00Z"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Stale write", note.Title)
		assert.True(t, note.UpdatedAt.Equal(ts(t, "2023-06-01T00:00:00Z")))
	})

	t.Run("Missing note returns nil", func(t *testing.T) {
		note, err := repo.UpdateNote("user-1", "ghost", &models.UpdateNoteRequest{
			Title:     strPtr("anything"),
			UpdatedAt: ts(t, "2024-01-05T00:00:00Z"),
		})
		require.NoError(t, err)
		assert.Nil(t, note)
	})

	t.Run("Update is scoped to the owner", func(t *testing.T) {
		note, err := repo.UpdateNote("user-2", "n1", &models.UpdateNoteRequest{
			Title:     strPtr("hijack"),
			UpdatedAt: ts(t, "2024-01-06T00:00:00Z"),
		})
		require.NoError(t, err)
		assert.Nil(t, note)
	})
}

func TestDeleteNote(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	_, err := repo.ImportNote("user-1", "n1", &models.ImportNoteRequest{
		Title:     "Doomed",
		Tags:      []string{"gone"},
		CreatedAt: ts(t, "2024-01-01T00:00:00Z"),
		UpdatedAt: ts(t, "2024-01-01T00:00:00Z"),
	})
	require.NoError(t, err)

	t.Run("Delete removes the note and records one tombstone", func(t *testing.T) {
		err := repo.DeleteNote("user-1", "n1")
		require.NoError(t, err)

		note, err := repo.GetNote("user-1", "n1")
		require.NoError(t, err)
		assert.Nil(t, note)

		count, err := repo.CountTombstones("user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		// Tag rows went with the note
		tags, err := getNoteTags(repo.db, "user-1", "n1")
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("Deleting again writes no second tombstone", func(t *testing.T) {
		err := repo.DeleteNote("user-1", "n1")
		require.NoError(t, err)

		count, err := repo.CountTombstones("user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Deleting a note that never existed is a no-op", func(t *testing.T) {
		err := repo.DeleteNote("user-1", "never-was")
		require.NoError(t, err)

		count, err := repo.CountTombstones("user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Id can be reused after deletion", func(t *testing.T) {
		note, err := repo.CreateNote("user-1", "n1", &models.CreateNoteRequest{
			Title:     "Back from the dead",
			CreatedAt: ts(t, "2024-02-01T00:00:00Z"),
		})
		require.NoError(t, err)
		assert.Equal(t, "n1", note.ID)
	})
}
