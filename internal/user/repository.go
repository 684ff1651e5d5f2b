package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/thesrcielos/BananaRealm/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

type UserRepository interface {
	CreateUser(ctx context.Context, username, email, password string) (*User, error)
	ValidateUser(ctx context.Context, username, password string) (*User, error)
	GetUser(ctx context.Context, id uint) (*User, error)
	UpdateUsername(ctx context.Context, id uint, username string) (*User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) CreateUser(ctx context.Context, username, email, password string) (*User, error) {
	var exists User
	result := r.db.WithContext(ctx).Where("username = ?", username).Or("email = ?", email).First(&exists)
	if result.Error == nil {
		return nil, apperrors.NewAppError(http.StatusConflict, "user already exists", nil)
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error checking user", result.Error)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	newUser := User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}

	if err := r.db.WithContext(ctx).Create(&newUser).Error; err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error creating user", err)
	}
	return &newUser, nil
}

func (r *GormUserRepository) ValidateUser(ctx context.Context, username, password string) (*User, error) {
	var u User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&u)
	if result.Error != nil {
		return nil, result.Error
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser returns nil, nil when no user has the id.
func (r *GormUserRepository) GetUser(ctx context.Context, id uint) (*User, error) {
	var u User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if result.Error != nil {
		return nil, result.Error
	}
	return &u, nil
}

func (r *GormUserRepository) UpdateUsername(ctx context.Context, id uint, username string) (*User, error) {
	var taken int64
	if err := r.db.WithContext(ctx).Model(&User{}).Where("username = ? AND id <> ?", username, id).Count(&taken).Error; err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, apperrors.NewAppError(http.StatusConflict, "username already taken", nil)
	}

	result := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("username", username)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NewAppError(http.StatusNotFound, "user not found", nil)
	}
	return r.GetUser(ctx, id)
}
