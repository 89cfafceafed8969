package models

import (
	"slices"
	"time"
)

// Role distinguishes child learners from parent accounts
type Role string

const (
	RoleChild  Role = "child"
	RoleParent Role = "parent"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleChild || r == RoleParent
}

// User represents a learner or parent account in the system
type User struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	Role             Role      `json:"role"`
	DisplayName      string    `json:"displayName"`
	Email            string    `json:"email,omitempty"`
	AvatarURL        string    `json:"avatarUrl,omitempty"`
	Points           int       `json:"points"`
	QuizzesCompleted int       `json:"quizzesCompleted"`
	Badges           []string  `json:"badgesEarned"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// HasBadge checks if the user already holds the named badge
func (u *User) HasBadge(name string) bool {
	return slices.Contains(u.Badges, name)
}

// AddBadge appends the badge unless it is already present.
// It returns true when the badge set changed.
func (u *User) AddBadge(name string) bool {
	if u.HasBadge(name) {
		return false
	}
	u.Badges = append(u.Badges, name)
	return true
}

// Clone returns a deep copy so stores never hand out shared slices
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Badges = slices.Clone(u.Badges)
	if c.Badges == nil {
		c.Badges = []string{}
	}
	return &c
}

// ProfileUpdate lists exactly the profile fields a user may change.
// Nil fields are left untouched.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName,omitempty" validate:"omitempty,min=1,max=64"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	AvatarURL   *string `json:"avatarUrl,omitempty" validate:"omitempty,max=512"`
}

// Apply copies the non-nil fields onto the user
func (p ProfileUpdate) Apply(u *User) {
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
}

// RegisterInput carries the fields accepted at registration
type RegisterInput struct {
	Username    string `json:"username" validate:"required,username"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Role        Role   `json:"role" validate:"required,oneof=child parent"`
	DisplayName string `json:"displayName" validate:"omitempty,max=64"`
	Email       string `json:"email" validate:"omitempty,email"`
	AvatarURL   string `json:"avatarUrl" validate:"omitempty,max=512"`
}
