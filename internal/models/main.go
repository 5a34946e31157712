// Package models defines the core data structures for accounts, family
// members and vaccination records.
package models

import "time"

// User represents a registered account with credentials.
type User struct {
	// ID is the unique identifier for the account (UUIDv7, time-sortable).
	ID string `json:"id"`
	// Username is the unique login name chosen by the user.
	Username string `json:"username"`
	// Name is the display name of the account holder.
	Name string `json:"name"`
	// Email is an optional contact address.
	Email string `json:"email,omitempty"`
	// PasswordHash is the salted digest of the password. Never serialized.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FamilyMember is a dependent tracked under one account.
// (UserID, Name, Birthdate) is unique per account.
type FamilyMember struct {
	ID string `json:"id"`
	// UserID references the owning account.
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	// Birthdate in YYYY-MM-DD form.
	Birthdate string `json:"birthdate"`
	// Sex is optional.
	Sex string `json:"sex,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Vaccine is an entry of the shared immunization catalog. The catalog is
// not owned by any account and is read-only through the API.
type Vaccine struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VaccineRecord states that a family member received a vaccine on a date.
// At most one record exists per (FamilyMemberID, VaccineID) pair.
type VaccineRecord struct {
	ID             string `json:"id"`
	FamilyMemberID string `json:"family_member_id"`
	VaccineID      string `json:"vaccine_id"`
	// Date in YYYY-MM-DD form.
	Date     string `json:"date"`
	Location string `json:"location"`
	// Dosage is optional free text (e.g. "0.5 ml", "dose 1 of 2").
	Dosage string `json:"dosage,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
