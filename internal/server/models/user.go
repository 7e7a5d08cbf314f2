// Package models holds the server-side domain records and the sanitized
// projections handed to callers.
package models

import "time"

// User is the internal record. HashedPassword and Token never leave the
// service boundary; callers outside it get a Profile or UserSummary.
type User struct {
	ID             string
	Email          string
	HashedPassword string
	Token          string
	Data           []byte
	GrantedTo      []string
	GrantedFrom    []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Summary strips everything but id and email.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email}
}

// HasGrantedTo reports whether id can read u's payload through a grant.
func (u *User) HasGrantedTo(id string) bool {
	for _, g := range u.GrantedTo {
		if g == id {
			return true
		}
	}
	return false
}

type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile is the sanitized projection of a User with grants resolved.
type Profile struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	Data        []byte        `json:"data,omitempty"`
	GrantedTo   []UserSummary `json:"grantedTo"`
	GrantedFrom []UserSummary `json:"grantedFrom"`
}

// Credentials is returned by signup and login.
type Credentials struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// ClientConfig is the public part of the server configuration.
type ClientConfig struct {
	TrustchainID   string `json:"trustchainId"`
	PayloadStore   string `json:"payloadStore"`
	TokenAlgorithm string `json:"tokenAlgorithm"`
}
