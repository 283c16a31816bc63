package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"user-role-system/internal/core/cache"
	"user-role-system/internal/domain"
)

const userCacheTTL = 5 * time.Minute

// UserService 按调用者角色做访问控制，再委托给 repository
type UserService struct {
	users domain.UserRepository
	cache *cache.Cache // 可为 nil（直接打库）
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, c *cache.Cache, log *zap.Logger) *UserService {
	return &UserService{users: users, cache: c, log: log}
}

func userKey(id uint) string { return fmt.Sprintf("user:%d", id) }

// List 仅 admin
func (s *UserService) List(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.users.ListAll(ctx)
}

func (s *UserService) Search(ctx context.Context, caller *domain.User, q string, offset, limit int) ([]domain.User, int64, error) {
	if !caller.IsAdmin() {
		return nil, 0, domain.ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.users.Search(ctx, q, offset, limit)
}

// Get 本人或 admin。先判权限再查库：非 admin 访问他人 id 直接 Forbidden，
// 不暴露该 id 是否存在
func (s *UserService) Get(ctx context.Context, caller *domain.User, id uint) (*domain.User, error) {
	if !caller.IsAdmin() && caller.ID != id {
		return nil, domain.ErrForbidden
	}
	u, err := s.cachedUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// Update 本人或 admin。Role/Active 字段只有 admin 能动，
// 普通用户载荷里带了也会被剥掉（不给自助提权留口子）
func (s *UserService) Update(ctx context.Context, caller *domain.User, id uint, in domain.UpdateInput) (*domain.User, error) {
	if !caller.IsAdmin() && caller.ID != id {
		return nil, domain.ErrForbidden
	}
	if !caller.IsAdmin() {
		in.Role = nil
		in.Active = nil
	}
	if in.Role != nil && !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	u, err := s.users.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return u, nil
}

// UpdateRole 仅 admin，角色必须是闭合枚举值
func (s *UserService) UpdateRole(ctx context.Context, caller *domain.User, id uint, role domain.Role) (*domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	u, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	s.log.Info("role changed", zap.Uint("id", id), zap.String("role", string(role)),
		zap.Uint("by", caller.ID))
	return u, nil
}

// Delete 仅 admin，硬删并级联 userdetails
func (s *UserService) Delete(ctx context.Context, caller *domain.User, id uint) (*domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	u, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	s.log.Info("user deleted", zap.Uint("id", id), zap.Uint("by", caller.ID))
	return u, nil
}

// SetSalary 仅 admin，薪资明细每用户一条
func (s *UserService) SetSalary(ctx context.Context, caller *domain.User, id uint, salary *float64) (*domain.UserDetails, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	d, err := s.users.UpsertSalary(ctx, id, salary)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return d, nil
}

func (s *UserService) cachedUser(ctx context.Context, id uint) (*domain.User, error) {
	if s.cache == nil {
		return s.users.FindByID(ctx, id)
	}
	return cache.GetOrLoadJSON[domain.User](s.cache, ctx, userKey(id), userCacheTTL,
		func(ctx context.Context) (*domain.User, error) {
			return s.users.FindByID(ctx, id)
		})
}

func (s *UserService) invalidate(ctx context.Context, id uint) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userKey(id))
	}
}
