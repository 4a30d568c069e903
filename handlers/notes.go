package handlers

import (
	"errors"
	"notes-sync/app"
	"notes-sync/middleware"
	"notes-sync/models"
	"notes-sync/services"

	"github.com/gofiber/fiber/v2"
)

// CreateNote inserts a new, empty-bodied note under a client-supplied id
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID := c.Params("id")
		if err := a.Validator.ValidateNoteID(noteID); err != nil {
			return validationFailed(c, err)
		}

		var req models.CreateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationFailed(c, err)
		}

		userID := middleware.GetUserID(c)

		note, err := a.Notes.Create(userID, noteID, &req)
		if err != nil {
			if errors.Is(err, services.ErrNoteConflict) {
				return conflict(c, "Note id already in use")
			}
			return serverErrorWithDetails(c, "Failed to create note", err)
		}

		return created(c, fiber.Map{"note": note})
	}
}

// ImportNote upserts a full note including its tag set. Repeating the same
// payload is safe, so callers may retry on transport failures.
func ImportNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID := c.Params("id")
		if err := a.Validator.ValidateNoteID(noteID); err != nil {
			return validationFailed(c, err)
		}

		var req models.ImportNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationFailed(c, err)
		}

		userID := middleware.GetUserID(c)

		note, err := a.Notes.Import(userID, noteID, &req)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to import note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// GetNote retrieves a single note by id
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID := c.Params("id")
		userID := middleware.GetUserID(c)

		note, err := a.Notes.Get(userID, noteID)
		if err != nil {
			if errors.Is(err, services.ErrNoteNotFound) {
				return notFound(c, "Note not found")
			}
			return serverErrorWithDetails(c, "Failed to fetch note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// UpdateNote applies a partial update; fields left out of the body keep
// their stored values, a present tags field replaces the whole set
func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID := c.Params("id")

		var req models.UpdateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationFailed(c, err)
		}

		userID := middleware.GetUserID(c)

		note, err := a.Notes.Update(userID, noteID, &req)
		if err != nil {
			if errors.Is(err, services.ErrNoteNotFound) {
				return notFound(c, "Note not found")
			}
			return serverErrorWithDetails(c, "Failed to update note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// DeleteNote removes a note and records a tombstone. Idempotent.
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID := c.Params("id")
		userID := middleware.GetUserID(c)

		if err := a.Notes.Delete(userID, noteID); err != nil {
			return serverErrorWithDetails(c, "Failed to delete note", err)
		}

		return success(c, fiber.Map{
			"message": "Note deleted successfully",
		})
	}
}

// SyncNotes returns the delta since the client's cursor plus the new cursor
func SyncNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SyncRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationFailed(c, err)
		}

		userID := middleware.GetUserID(c)

		resp, err := a.Notes.Sync(userID, &req)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to sync notes", err)
		}

		a.Logger.Info("sync completed",
			"user_id", userID,
			"device_id", req.DeviceID,
			"notes_count", len(resp.Notes),
			"deleted_count", len(resp.DeletedNoteIDs),
		)

		return success(c, fiber.Map{
			"notes":            resp.Notes,
			"deleted_note_ids": resp.DeletedNoteIDs,
			"current_time":     resp.CurrentTime,
		})
	}
}
