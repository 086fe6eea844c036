package user

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"troffee-admin-console/internal/domain/shared"
)

// Role is the platform role of a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultPageSize matches the page size of the user table
const DefaultPageSize = 10

// User is a user record as served by the user-management API
type User struct {
	ID              string `json:"_id"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Role            Role   `json:"role"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	IsPhoneVerified bool   `json:"isPhoneVerified"`
	Suspended       bool   `json:"suspended"`
}

// IsVerified returns true only when both email and phone are verified
func (u *User) IsVerified() bool {
	return u.IsEmailVerified && u.IsPhoneVerified
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Page is one page of users plus the size of the whole filtered collection
type Page struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// ListQuery selects a page of users
type ListQuery struct {
	Search   string
	Page     int
	PageSize int
}

// Normalize trims the search text and clamps page and page size
func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Stats are the counters shown above the user table.
// Only TotalUsers covers the whole collection, the other counters describe the
// returned page.
type Stats struct {
	TotalUsers     int `json:"totalUsers"`
	VerifiedUsers  int `json:"verifiedUsers"`
	SuspendedUsers int `json:"suspendedUsers"`
	AdminUsers     int `json:"adminUsers"`
}

// ComputeStats derives the counters from a page
func ComputeStats(page Page) Stats {
	stats := Stats{TotalUsers: page.Total}
	for i := range page.Users {
		u := &page.Users[i]
		if u.IsVerified() {
			stats.VerifiedUsers++
		}
		if u.Suspended {
			stats.SuspendedUsers++
		}
		if u.IsAdmin() {
			stats.AdminUsers++
		}
	}
	return stats
}

// TotalPages returns the number of pages needed to show total users
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Update is the profile payload sent by the edit modal.
// An empty Password means "keep the current password" and is not sent. Password rules
// and required profile fields are enforced by the user API.
type Update struct {
	FullName        string `json:"fullName"           validate:"max=120"`
	Email           string `json:"email"              validate:"omitempty,email"`
	PhoneNumber     string `json:"phoneNumber"        validate:"omitempty,max=32"`
	Role            Role   `json:"role"               validate:"oneof=user admin"`
	Password        string `json:"password,omitempty"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	IsPhoneVerified bool   `json:"isPhoneVerified"`
}

// NewUpdate seeds the edit form from an existing user, with an empty password
func NewUpdate(u User) Update {
	return Update{
		FullName:        u.FullName,
		Email:           u.Email,
		PhoneNumber:     u.PhoneNumber,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
		IsPhoneVerified: u.IsPhoneVerified,
	}
}

var validate = validator.New()

// Validate checks the update before it is sent
func (u Update) Validate() error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("%w: %s", shared.ErrValidation, describe(err))
	}
	return nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
