package model

import "time"

// Group is a study group a profile may belong to.
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Profile holds the preferences of an account. There is at most one
// profile per account.
type Profile struct {
	AccountID              int64     `json:"account_id"`
	NotifyByEmail          bool      `json:"notify_by_email"`
	NotifyAboutNewTasks    bool      `json:"notify_about_new_tasks"`
	NotifyAboutNewServices bool      `json:"notify_about_new_services"`
	About                  string    `json:"about"`
	GroupID                *int64    `json:"group"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
