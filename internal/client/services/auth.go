// Package services contains the application services of the terminal
// client: account and session handling, the reflect/save calls with the
// local history mirror, and persisted display settings.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/moodjournal/internal/client/client"
	"github.com/dmitrijs2005/moodjournal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

var ErrMissingCredentials = errors.New("please enter both fields")

// AuthService manages accounts and the locally stored session token.
type AuthService interface {
	Signup(ctx context.Context, email, password string) error
	Register(ctx context.Context, username, password string) error
	// Login authenticates and stores the issued token.
	Login(ctx context.Context, email, password string) error
	// Logout discards the stored token.
	Logout(ctx context.Context) error
	// Token returns the stored token, or "" when there is none.
	Token(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client   client.Client
	metadata metadata.Repository
	logger   logging.Logger
}

func NewAuthService(c client.Client, m metadata.Repository, l logging.Logger) AuthService {
	return &authService{client: c, metadata: m, logger: l.With("module", "auth_service")}
}

func credentials(id, password string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(password) == "" {
		return "", ErrMissingCredentials
	}
	return id, nil
}

func (s *authService) Signup(ctx context.Context, email, password string) error {
	email, err := credentials(email, password)
	if err != nil {
		return err
	}
	return s.client.Signup(ctx, email, password)
}

func (s *authService) Register(ctx context.Context, username, password string) error {
	username, err := credentials(username, password)
	if err != nil {
		return err
	}
	return s.client.Register(ctx, username, password)
}

func (s *authService) Login(ctx context.Context, email, password string) error {
	email, err := credentials(email, password)
	if err != nil {
		return err
	}

	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.metadata.Set(ctx, metadata.KeyToken, token); err != nil {
		return err
	}

	s.logger.Debug(ctx, "session token stored", "email", email)
	return nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.metadata.Delete(ctx, metadata.KeyToken)
}

func (s *authService) Token(ctx context.Context) (string, error) {
	token, _, err := s.metadata.Get(ctx, metadata.KeyToken)
	return token, err
}

func (s *authService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
