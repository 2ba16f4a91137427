package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a teacher profile, keyed by the external identity provider's id.
// Created on first profile write after authentication.
type User struct {
	ID        uuid.UUID `json:"id"`
	AuthID    string    `json:"auth_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Institute *string   `json:"institute,omitempty"`
	Subject   *NamedRef `json:"subject,omitempty"`
	Place     *string   `json:"place,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Complete reports whether the profile has both required fields set.
func (u *User) Complete() bool {
	return u.Name != "" && u.Subject != nil
}

// UpdateProfileRequest is the payload for creating or updating the caller's
// profile. Subject may be a catalog id or a free-text subject name; an
// unknown name is created in the catalog on the fly.
type UpdateProfileRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=255"`
	Institute *string `json:"institute"`
	Subject   *string `json:"subject"`
	Place     *string `json:"place"`
}

// ProfileCheck is the response of the profile completeness probe.
type ProfileCheck struct {
	Complete bool   `json:"complete"`
	User     *User  `json:"user,omitempty"`
	Message  string `json:"message,omitempty"`
}
