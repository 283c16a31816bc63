package service

import (
	"context"
	"sort"
	"strings"

	"user-role-system/internal/domain"
)

// stubUserRepo 内存版 UserRepository，仅测试用
type stubUserRepo struct {
	nextID  uint
	users   map[uint]*domain.User
	details map[uint]*domain.UserDetails // key = userID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		nextID:  1,
		users:   make(map[uint]*domain.User),
		details: make(map[uint]*domain.UserDetails),
	}
}

func (r *stubUserRepo) clone(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	if d, ok := r.details[u.ID]; ok {
		dc := *d
		c.Details = &dc
	} else {
		c.Details = nil
	}
	return &c
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, e := range r.users {
		if e.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	return r.clone(r.users[id]), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return r.clone(u), nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	ids := make([]int, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.clone(r.users[uint(id)]))
	}
	return out, nil
}

func (r *stubUserRepo) Search(ctx context.Context, q string, offset, limit int) ([]domain.User, int64, error) {
	all, _ := r.ListAll(ctx)
	matched := make([]domain.User, 0, len(all))
	for _, u := range all {
		if q == "" || strings.Contains(u.Email, q) || strings.Contains(u.Name, q) {
			matched = append(matched, u)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *stubUserRepo) Update(_ context.Context, id uint, in domain.UpdateInput) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Name = in.Name
	u.Surname = in.Surname
	u.Email = in.Email
	u.Phone = in.Phone
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	return r.clone(u), nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id uint, role domain.Role) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return r.clone(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	snap := r.clone(u)
	delete(r.users, id)
	delete(r.details, id)
	return snap, nil
}

func (r *stubUserRepo) UpsertSalary(_ context.Context, userID uint, salary *float64) (*domain.UserDetails, error) {
	if _, ok := r.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	d, ok := r.details[userID]
	if !ok {
		d = &domain.UserDetails{ID: userID, UserID: userID}
		r.details[userID] = d
	}
	d.Salary = salary
	dc := *d
	return &dc, nil
}

var _ domain.UserRepository = (*stubUserRepo)(nil)
