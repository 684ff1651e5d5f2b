package user

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/thesrcielos/BananaRealm/internal/apperrors"
	"github.com/thesrcielos/BananaRealm/internal/logger"
)

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (u *UserService) Signup(ctx context.Context, user User) (string, error) {
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return "", apperrors.NewAppError(http.StatusBadRequest, "email is required", nil)
	}
	userRetrieved, err := u.repo.CreateUser(ctx, user.Username, user.Email, user.Password)
	if err != nil {
		return "", err
	}

	token, errJWT := GenerateJWT(userRetrieved)
	if errJWT != nil {
		return "", apperrors.NewAppError(http.StatusInternalServerError, "error creating jwt token", errJWT)
	}
	return token, nil
}

func (u *UserService) Login(ctx context.Context, req LoginRequest) (string, error) {
	userRetrieved, err := u.repo.ValidateUser(ctx, req.Username, req.Password)
	if err != nil {
		return "", apperrors.NewAppError(http.StatusUnauthorized, "invalid credentials", err)
	}
	token, errJWT := GenerateJWT(userRetrieved)
	if errJWT != nil {
		return "", apperrors.NewAppError(http.StatusInternalServerError, "error creating jwt token", errJWT)
	}
	return token, nil
}

func (u *UserService) Profile(ctx context.Context, id *Identity) (*ProfileResponse, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	user, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewAppError(http.StatusNotFound, "user not found", errors.New("user not found"))
	}
	return &ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// UpdateUsername changes the display name and returns a token carrying it.
func (u *UserService) UpdateUsername(ctx context.Context, id *Identity, username string) (string, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return "", err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return "", apperrors.NewAppError(http.StatusBadRequest, "username is required", nil)
	}

	updated, err := u.repo.UpdateUsername(ctx, userID, username)
	if err != nil {
		return "", err
	}
	logger.Info("User %d renamed to %s", updated.ID, updated.Username)

	token, errJWT := GenerateJWT(updated)
	if errJWT != nil {
		return "", apperrors.NewAppError(http.StatusInternalServerError, "error creating jwt token", errJWT)
	}
	return token, nil
}

// ResolveUsername reads the profile on every call; there is no cache so renames
// show up on the next write. Missing profiles and lookup failures resolve to
// AnonymousUsername.
func (u *UserService) ResolveUsername(ctx context.Context, userID string) string {
	if userID == "" {
		return AnonymousUsername
	}
	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return AnonymousUsername
	}

	user, err := u.repo.GetUser(ctx, uint(id))
	if err != nil {
		logger.Error("Error getting username for %s: %v", userID, err)
		return AnonymousUsername
	}
	if user == nil {
		return AnonymousUsername
	}
	if user.Username != "" {
		return user.Username
	}
	if local, _, ok := strings.Cut(user.Email, "@"); ok && local != "" {
		return local
	}
	return AnonymousUsername
}

func parseUserID(id *Identity) (uint, error) {
	if id == nil {
		return 0, apperrors.NewAppError(http.StatusUnauthorized, "not authenticated", apperrors.ErrUnauthenticated)
	}
	parsed, err := strconv.ParseUint(id.UserID, 10, 64)
	if err != nil {
		return 0, apperrors.NewAppError(http.StatusBadRequest, "invalid user id", err)
	}
	return uint(parsed), nil
}
