package models

import "time"

// Profile is stored at users/{uid} when an account registers.
type Profile struct {
	UserID       string    `json:"user_id" firestore:"userId"`
	FirstName    string    `json:"first_name" firestore:"firstName"`
	LastName     string    `json:"last_name" firestore:"lastName"`
	Email        string    `json:"email" firestore:"email"`
	DateModified time.Time `json:"date_modified" firestore:"dateModified"`
}

// Account is the dashboard view of the caller.
type Account struct {
	Session
	Profile *Profile `json:"profile,omitempty"`
}
