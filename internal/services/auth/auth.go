// Package auth содержит бизнес-логику регистрации и входа операторов кассы.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/jwt"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/password"
	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
	"github.com/magabrotheeeer/venue-cashdesk/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при неверном имени или пароле.
// Сообщение намеренно не уточняет, какое из полей неверно.
var ErrInvalidCredentials = errors.New("wrong username or password")

// ErrUsernameTaken возвращается при регистрации с занятым именем.
var ErrUsernameTaken = errors.New("username is already taken")

// UserRepository описывает контракт для работы с операторами в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового оператора и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (int, error)

	// GetUserByUsername возвращает оператора по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service отвечает за регистрацию, вход и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового оператора с хэшированием пароля.
// Занятое имя даёт ErrUsernameTaken.
func (s *Service) Register(ctx context.Context, username, rawPassword string, isAdmin bool) (int, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Username:     username,
		PasswordHash: hashed,
		IsAdmin:      isAdmin,
	}
	id, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Login проверяет пароль оператора и генерирует JWT.
//
// И неизвестное имя, и неверный пароль дают одинаковую ошибку
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.IsAdmin)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает данные оператора.
func (s *Service) ValidateToken(token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	}, nil
}
