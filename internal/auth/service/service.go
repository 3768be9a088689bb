package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mediguide/internal/auth"
	"mediguide/internal/auth/password"
	"mediguide/internal/auth/repository"
	"mediguide/internal/auth/token"
	"mediguide/internal/events"
	"mediguide/platform/apperr"
	"mediguide/platform/config"
	"mediguide/platform/httpkit"
	"mediguide/platform/logger"
	"mediguide/platform/phone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	msgEmailTaken          = "Email already registered!"
	msgInvalidCredentials  = "Invalid credentials"
	msgInvalidRefreshToken = "invalid refresh token"
	msgRefreshTokenExpired = "refresh token expired"
	msgAccountNotFound     = "account not found"
)

var accountRoles = []string{httpkit.RoleHospital}

// Tokens is the pair issued on login and refresh.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput holds validated registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type Service struct {
	repo     repository.AuthRepository
	cfg      config.AuthServiceConfig
	eventBus events.Bus
	log      *logger.Logger
	now      func() time.Time
}

func New(repo repository.AuthRepository, cfg config.AuthServiceConfig, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, eventBus: eventBus, log: log, now: time.Now}
}

// Register creates a hospital account and its empty listing.
func (s *Service) Register(ctx context.Context, in RegisterInput) (auth.AccountSummary, error) {
	email := strings.TrimSpace(in.Email)

	hash, err := password.Hash(in.Password)
	if err != nil {
		return auth.AccountSummary{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err).WithOp("auth.Register")
	}

	account, hospitalID, err := s.repo.CreateAccount(ctx, repository.CreateAccountParams{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        phone.NormalizeE164(in.Phone),
		PasswordHash: hash,
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		s.log.AuthEvent("register", email, false, "email already registered")
		return auth.AccountSummary{}, apperr.Conflict(msgEmailTaken)
	}
	if err != nil {
		s.log.DatabaseError("create account", err)
		return auth.AccountSummary{}, apperr.Wrap(apperr.KindInternal, "failed to create account", err).WithOp("auth.Register")
	}

	s.log.AuthEvent("register", account.Email, true, "")
	s.eventBus.Publish(ctx, events.HospitalRegistered{
		BaseEvent:  events.NewBaseEvent(),
		AccountID:  account.ID,
		HospitalID: hospitalID,
		Name:       account.Name,
		Email:      account.Email,
	})

	return toSummary(account), nil
}

// Login verifies credentials and issues a new token pair.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (Tokens, error) {
	account, err := s.repo.GetAccountByEmail(ctx, strings.TrimSpace(email))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.DatabaseError("get account by email", err)
		return Tokens{}, apperr.Wrap(apperr.KindInternal, "failed to load account", err).WithOp("auth.Login")
	}
	if err != nil || password.Compare(account.PasswordHash, plainPassword) != nil {
		s.log.AuthEvent("login", email, false, "invalid credentials")
		return Tokens{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	s.log.AuthEvent("login", account.Email, true, "")
	return s.issueTokens(ctx, account.ID)
}

// Refresh revokes refreshToken and issues a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	hash := token.Digest(refreshToken)
	accountID, expiresAt, err := s.repo.ConsumeRefreshToken(ctx, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return Tokens{}, apperr.Unauthorized(msgInvalidRefreshToken)
	}
	if err != nil {
		return Tokens{}, apperr.Wrap(apperr.KindInternal, "failed to consume refresh token", err).WithOp("auth.Refresh")
	}
	if s.now().After(expiresAt) {
		return Tokens{}, apperr.Unauthorized(msgRefreshTokenExpired)
	}

	return s.issueTokens(ctx, accountID)
}

// Logout revokes refreshToken. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if err := s.repo.RevokeRefreshToken(ctx, token.Digest(refreshToken)); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to revoke refresh token", err).WithOp("auth.Logout")
	}
	return nil
}

func (s *Service) GetAccount(ctx context.Context, accountID uuid.UUID) (auth.AccountSummary, error) {
	account, err := s.repo.GetAccountByID(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		return auth.AccountSummary{}, apperr.NotFound(msgAccountNotFound)
	}
	if err != nil {
		return auth.AccountSummary{}, apperr.Wrap(apperr.KindInternal, "failed to load account", err).WithOp("auth.GetAccount")
	}
	return toSummary(account), nil
}

func (s *Service) issueTokens(ctx context.Context, accountID uuid.UUID) (Tokens, error) {
	accessToken, err := s.signJWT(accountID, accountRoles, s.cfg.GetAccessTokenTTL(), httpkit.AccessTokenType, s.cfg.GetJWTAccessSecret())
	if err != nil {
		return Tokens{}, apperr.Wrap(apperr.KindInternal, "failed to sign access token", err)
	}

	refresh, err := token.NewRefresh()
	if err != nil {
		return Tokens{}, apperr.Wrap(apperr.KindInternal, "failed to generate refresh token", err)
	}

	expiresAt := s.now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, accountID, refresh.Digest, expiresAt); err != nil {
		s.log.DatabaseError("create refresh token", err)
		return Tokens{}, apperr.Wrap(apperr.KindInternal, "failed to store refresh token", err)
	}

	return Tokens{AccessToken: accessToken, RefreshToken: refresh.Plain}, nil
}

func (s *Service) signJWT(accountID uuid.UUID, roles []string, ttl time.Duration, tokenType, secret string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   accountID.String(),
		"type":  tokenType,
		"roles": roles,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(secret))
}

func toSummary(account repository.Account) auth.AccountSummary {
	return auth.AccountSummary{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Phone:     account.Phone,
		Roles:     accountRoles,
		CreatedAt: account.CreatedAt,
	}
}
