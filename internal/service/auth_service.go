package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"user-role-system/internal/core/auth"
	"user-role-system/internal/domain"
	"user-role-system/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwter: jwter, log: log}
}

type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Phone    string
	Password string
}

// Register 注册固定 role=user、active=true，不接受外部传入
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	u := &domain.User{
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         domain.RoleUser,
		Active:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("id", u.ID), zap.String("email", u.Email))
	return u, nil
}

// Login 凭据错误一律 ErrUnauthorized，账号停用返回 ErrAccountInactive
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, domain.ErrUnauthorized
	}
	if !u.Active {
		return "", nil, domain.ErrAccountInactive
	}
	tok, err := s.jwter.Issue(u.Email, string(u.Role))
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// Resolve token → claims → 当前用户。用户已被删的有效签名 token 视同未认证
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwter.Parse(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	u, err := s.users.FindByEmail(ctx, claims.Email())
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}
