// Package services implements the application logic of the bug tracker:
// authentication, project ownership and the issue workflow. Services
// orchestrate repositories via the repomanager and return sentinel
// errors from internal/common for the HTTP layer to translate.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Tushar822/bugtracker/internal/common"
	"github.com/Tushar822/bugtracker/internal/server/auth"
	"github.com/Tushar822/bugtracker/internal/server/config"
	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/Tushar822/bugtracker/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

func (s *UserService) Register(ctx context.Context, email, username, password string, role models.Role) (*models.User, error) {

	if email == "" || username == "" || password == "" {
		return nil, fmt.Errorf("%w: email, username and password are required", common.ErrorValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Email:        email,
		UserName:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the email/password pair and mints an access token with
// the user's email as subject. Every failure collapses into
// ErrorUnauthorized so callers cannot probe which accounts exist.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !user.IsActive {
		return "", common.ErrorUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Authenticate resolves a raw access token to the user it identifies.
// The token's signature and expiry are verified, its subject is read as
// an email address, and the user is looked up by that email. Missing
// token, bad signature, expired token and unknown subject all yield
// the same ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {

	if tokenString == "" {
		return nil, common.ErrorUnauthorized
	}

	email, err := auth.GetSubjectFromToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// RequireRole is the role gate: it passes the user through when their
// role matches and fails with ErrorForbidden otherwise. The caller must
// already be authenticated, so a mismatch is never ErrorUnauthorized.
func (s *UserService) RequireRole(user *models.User, role models.Role) (*models.User, error) {
	if user.Role != role {
		return nil, fmt.Errorf("%w: only %s users can perform this action", common.ErrorForbidden, roleLabel(role))
	}
	return user, nil
}

func roleLabel(role models.Role) string {
	switch role {
	case models.RolePM:
		return "Project Manager"
	case models.RoleDeveloper:
		return "Developer"
	case models.RoleDesigner:
		return "Designer"
	}
	return string(role)
}
