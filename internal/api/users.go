package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Nihal1l/jobboard-client/internal/domain"
)

type userRecord struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsStaff    bool   `json:"is_staff"`
	DateJoined string `json:"date_joined"`
}

func (r userRecord) toDomain() domain.User {
	return domain.User{
		ID:         r.ID,
		Email:      r.Email,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		IsStaff:    r.IsStaff,
		DateJoined: parseTime(r.DateJoined),
	}
}

// ListUsers fetches every account. Admin only.
func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var records []userRecord
	if err := c.do(ctx, http.MethodGet, c.authURL("/auth/users/"), token, nil, &records); err != nil {
		return nil, &domain.FetchError{Resource: "users", Err: err}
	}
	users := make([]domain.User, 0, len(records))
	for _, r := range records {
		users = append(users, r.toDomain())
	}
	return users, nil
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, token string, userID int64) error {
	return c.do(ctx, http.MethodDelete, c.authURL(fmt.Sprintf("/auth/users/%d/", userID)), token, nil, nil)
}
