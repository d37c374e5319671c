package dto

import (
	"time"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// UserResponse defines the data returned for a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	UserID        string    `json:"userID"`
	Username      string    `json:"username"`
	Name          string    `json:"name"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListUsersResponse wraps a page of users with the pagination token.
type ListUsersResponse struct {
	Users     []UserResponse `json:"users"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Username:      u.Username,
		Name:          u.Name,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		LastUpdatedAt: u.LastUpdatedAt,
	}
}

// ToListUsersResponse converts a page of domain users plus its token.
func ToListUsersResponse(users []domain.User, nextToken *string) *ListUsersResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return &ListUsersResponse{Users: res, NextToken: nextToken}
}
