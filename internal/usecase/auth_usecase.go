package usecase

import (
	"context"
	"time"

	"unisell/internal/domain/entity"
	"unisell/internal/domain/repository"
	"unisell/internal/domain/service"
	"unisell/pkg/errors"
)

// AuthUseCase turns credentials into session tokens and tokens back into users.
type AuthUseCase struct {
	users    *UserUseCase
	userRepo repository.UserRepository
	tokens   service.TokenIssuer
	revoked  service.TokenRevocationList
	now      func() time.Time
}

func NewAuthUseCase(
	users *UserUseCase,
	userRepo repository.UserRepository,
	tokens service.TokenIssuer,
	revoked service.TokenRevocationList,
) *AuthUseCase {
	return &AuthUseCase{
		users:    users,
		userRepo: userRepo,
		tokens:   tokens,
		revoked:  revoked,
		now:      time.Now,
	}
}

type AuthResult struct {
	User      *entity.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func (uc *AuthUseCase) Signup(ctx context.Context, input CreateUserInput) (*AuthResult, error) {
	userID, err := uc.users.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) Login(ctx context.Context, universityID, username, password string) (*AuthResult, error) {
	user, err := uc.users.Authenticate(ctx, universityID, username, password)
	if err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Logout revokes the token for the rest of its lifetime.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}
	ttl := claims.ExpiresAt.Sub(uc.now())
	if ttl <= 0 {
		return nil
	}
	if err := uc.revoked.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return errors.Internal("failed to revoke session", err)
	}
	return nil
}

// ResolveSession verifies token and loads its user once for the request.
func (uc *AuthUseCase) ResolveSession(ctx context.Context, token string) (*entity.User, error) {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}
	revoked, err := uc.revoked.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, errors.Internal("failed to check session", err)
	}
	if revoked {
		return nil, errors.Unauthorized("Session has been logged out", nil)
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.Unauthorized("Session user no longer exists", err)
		}
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*AuthResult, error) {
	token, claims, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.Internal("failed to issue session token", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: claims.ExpiresAt}, nil
}
