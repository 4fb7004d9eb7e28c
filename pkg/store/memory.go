package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/collegegate/collegegate/pkg/core"
)

// MemoryUserRepository keeps users in process memory. Safe for
// concurrent use.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]User // keyed by id
}

// NewMemoryUserRepository returns an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]User)}
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	email = normalizeEmail(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if normalizeEmail(u.Email) == email {
			out := u
			return &out, nil
		}
	}
	return nil, core.NewNotFoundError("user not found: " + email)
}

func (r *MemoryUserRepository) Save(_ context.Context, user *User) error {
	if err := prepareUser(user); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	// Upsert by email: a re-registration updates the existing account
	// but never clears an admin-imposed ban.
	for id, existing := range r.users {
		if id != user.ID && normalizeEmail(existing.Email) == normalizeEmail(user.Email) {
			user.ID = existing.ID
			user.CreatedAt = existing.CreatedAt
			user.Banned = existing.Banned
			break
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) ListAll(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryUserRepository) SetBanned(_ context.Context, id string, banned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return core.NewNotFoundError("user not found: " + id)
	}
	u.Banned = banned
	r.users[id] = u
	return nil
}

// MemoryInquiryRepository keeps inquiries in process memory. Safe for
// concurrent use.
type MemoryInquiryRepository struct {
	mu        sync.RWMutex
	inquiries map[string]Inquiry
}

// NewMemoryInquiryRepository returns an empty in-memory inquiry store.
func NewMemoryInquiryRepository() *MemoryInquiryRepository {
	return &MemoryInquiryRepository{inquiries: make(map[string]Inquiry)}
}

func (r *MemoryInquiryRepository) Save(_ context.Context, inquiry *Inquiry) error {
	if err := prepareInquiry(inquiry); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inquiries[inquiry.ID] = *inquiry
	return nil
}

func (r *MemoryInquiryRepository) ListAll(_ context.Context) ([]Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Inquiry, 0, len(r.inquiries))
	for _, q := range r.inquiries {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryInquiryRepository) SetStatus(_ context.Context, id string, status InquiryStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.inquiries[id]
	if !ok {
		return core.NewNotFoundError("inquiry not found: " + id)
	}
	q.Status = status
	r.inquiries[id] = q
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func prepareUser(user *User) error {
	if user == nil {
		return core.NewInvalidRequestError("user is required")
	}
	if normalizeEmail(user.Email) == "" {
		return core.NewInvalidRequestErrorWithParam("email is required", "email")
	}
	if strings.TrimSpace(user.Name) == "" {
		return core.NewInvalidRequestErrorWithParam("name is required", "name")
	}
	if user.Role == "" {
		user.Role = RoleStudent
	}
	if !user.Role.Valid() {
		return core.NewInvalidRequestErrorWithParam("unknown role: "+string(user.Role), "role")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	return nil
}

func prepareInquiry(inquiry *Inquiry) error {
	if inquiry == nil {
		return core.NewInvalidRequestError("inquiry is required")
	}
	if strings.TrimSpace(inquiry.Query) == "" {
		return core.NewInvalidRequestErrorWithParam("query is required", "query")
	}
	if strings.TrimSpace(inquiry.StudentName) == "" {
		return core.NewInvalidRequestErrorWithParam("student name is required", "studentName")
	}
	if inquiry.Status == "" {
		inquiry.Status = InquiryPending
	}
	if inquiry.ID == "" {
		inquiry.ID = uuid.NewString()
	}
	if inquiry.CreatedAt.IsZero() {
		inquiry.CreatedAt = time.Now().UTC()
	}
	return nil
}
