// Package store persists users and counseling inquiries. It ships an
// in-memory implementation for tests and single-process runs, and a
// PostgreSQL implementation for deployments.
package store

import (
	"context"
	"time"
)

// Role classifies an account.
type Role string

const (
	RoleStudent   Role = "STUDENT"
	RoleCounselor Role = "COUNSELOR"
	RoleAdmin     Role = "ADMIN"
	RoleTrainee   Role = "TRAINEE"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCounselor, RoleAdmin, RoleTrainee:
		return true
	}
	return false
}

// InquiryStatus tracks whether a counselor has answered an inquiry.
type InquiryStatus string

const (
	InquiryPending  InquiryStatus = "PENDING"
	InquiryAnswered InquiryStatus = "ANSWERED"
)

// User is a registered account.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	Mobile         string    `json:"mobile,omitempty"`
	WhatsApp       string    `json:"whatsapp,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	StudentID      string    `json:"studentId,omitempty"`
	Banned         bool      `json:"banned"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Inquiry is a student question routed to the counselor desk.
type Inquiry struct {
	ID          string        `json:"id"`
	StudentName string        `json:"studentName"`
	StudentID   string        `json:"studentId"`
	Course      string        `json:"course"`
	Query       string        `json:"query"`
	Status      InquiryStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// UserRepository stores accounts. Save assigns an ID and creation time
// when the record has none, and upserts by email.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
	ListAll(ctx context.Context) ([]User, error)
	SetBanned(ctx context.Context, id string, banned bool) error
}

// InquiryRepository stores inquiries. Save assigns an ID, creation
// time, and the PENDING status when the record has none.
type InquiryRepository interface {
	Save(ctx context.Context, inquiry *Inquiry) error
	ListAll(ctx context.Context) ([]Inquiry, error)
	SetStatus(ctx context.Context, id string, status InquiryStatus) error
}
