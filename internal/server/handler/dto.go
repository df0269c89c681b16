package handler

import (
	"github.com/busshop-tracker/internal/domain/entry"
)

// LoginRequest represents a name/PIN login attempt. The PIN must be exactly
// four digits.
type LoginRequest struct {
	Name string `json:"name" binding:"required"`
	PIN  string `json:"pin" binding:"required,len=4,numeric"`
}

// UserResponse represents a user in API responses. The PIN itself never
// leaves the server; only whether one has been claimed.
type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	PINSet bool   `json:"pinSet"`
}

// CreateUserRequest represents a request to add a user to the directory
type CreateUserRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required,oneof=mechanic admin"`
}

// RenameUserRequest represents a request to rename a user
type RenameUserRequest struct {
	OldName string `json:"oldName" binding:"required"`
	NewName string `json:"newName" binding:"required"`
}

// UserNameRequest carries the name for key-based user mutations
type UserNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpsertEntryRequest represents a work-order payload. Partial payloads are
// allowed; id is optional and generated when absent. Derived fields sent by
// the caller are ignored and recomputed server-side.
type UpsertEntryRequest struct {
	ID          string       `json:"id"`
	Mechanic    string       `json:"mechanic"`
	Bus         string       `json:"bus"`
	ServiceType string       `json:"serviceType"`
	Odometer    string       `json:"odometer"`
	LaborHours  string       `json:"laborHours"`
	Notes       string       `json:"notes"`
	Photos      []string     `json:"photos"`
	Parts       []entry.Part `json:"parts"`
	StartTime   string       `json:"startTime"`
	EndTime     string       `json:"endTime"`
}

// UpsertEntryResponse pairs the record id with the stored, decoded entry
type UpsertEntryResponse struct {
	ID    string       `json:"id"`
	Saved *entry.Entry `json:"saved"`
}

// DeleteEntryResponse acknowledges an idempotent delete
type DeleteEntryResponse struct {
	OK bool `json:"ok"`
}

// toEntry maps an upsert payload onto the domain entry. Date and
// DurationHours are left zero; the service derives them.
func (r *UpsertEntryRequest) toEntry() *entry.Entry {
	return &entry.Entry{
		ID:          r.ID,
		Mechanic:    r.Mechanic,
		Bus:         r.Bus,
		ServiceType: r.ServiceType,
		Odometer:    r.Odometer,
		LaborHours:  r.LaborHours,
		Notes:       r.Notes,
		Photos:      r.Photos,
		Parts:       r.Parts,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}
