package user

import (
	"context"

	"abarrotes-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, name, email, password string, role Role) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetProfile(ctx context.Context, userID int64) (User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, password string, role Role) (string, User, error) {
	log := logger.FromCtx(ctx)

	if role == "" {
		role = RoleBuyer
	}
	if !role.Valid() {
		return "", User{}, ErrInvalidRole
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, name, email, hashed, role)
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register completed",
		zap.Int64("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	return token, u, err
}

func (s *service) GetProfile(ctx context.Context, userID int64) (User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	u.Password = ""
	return u, nil
}
