package models

import "time"

// Note is the canonical note entity returned by the API. Tags are
// unordered; an empty set serializes as [].
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNoteRequest struct {
	Title     string    `json:"title" validate:"required,max=512"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
}

type ImportNoteRequest struct {
	Title     string    `json:"title" validate:"required,max=512"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags" validate:"dive,tag"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
	UpdatedAt time.Time `json:"updated_at" validate:"required"`
}

// UpdateNoteRequest carries a partial update. Pointer fields distinguish
// "absent, keep current value" from "set": a nil Title leaves the stored
// title untouched, a nil Tags keeps the existing tag set. JSON null is
// treated the same as an absent field.
type UpdateNoteRequest struct {
	Title     *string   `json:"title" validate:"omitempty,max=512"`
	Content   *string   `json:"content"`
	Tags      *[]string `json:"tags" validate:"omitempty,dive,tag"`
	UpdatedAt time.Time `json:"updated_at" validate:"required"`
}

type SyncRequest struct {
	LastSyncTime *time.Time `json:"last_sync_time"`
	DeviceID     string     `json:"device_id" validate:"required,max=128"`
}

// SyncResponse is the delta for one pull: notes changed since the cursor
// in ascending updated_at order, ids deleted since the cursor, and the
// new cursor the client should remember.
type SyncResponse struct {
	Notes          []Note    `json:"notes"`
	DeletedNoteIDs []string  `json:"deleted_note_ids"`
	CurrentTime    time.Time `json:"current_time"`
}

type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}
