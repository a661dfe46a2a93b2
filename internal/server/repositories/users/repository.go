// Package users is the credential store.
package users

import (
	"context"

	"github.com/dmitrijs2005/moodjournal/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in ID and CreatedAt. A duplicate email
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail yields common.ErrorNotFound for an unknown email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID yields common.ErrorNotFound for an unknown id.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
