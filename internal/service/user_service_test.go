package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-role-system/internal/domain"
)

func seed(t *testing.T, repo *stubUserRepo, email string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{
		Name: "Test", Surname: "User", Email: email,
		PasswordHash: "h", Role: role, Active: true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func newUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, nil, zap.NewNop())
}

func TestListAdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	admin := seed(t, repo, "admin@x.com", domain.RoleAdmin)
	user := seed(t, repo, "user@x.com", domain.RoleUser)

	us, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, us, 2)

	_, err = svc.List(ctx, user)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetSelfOrAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	admin := seed(t, repo, "admin@x.com", domain.RoleAdmin)
	a := seed(t, repo, "a@x.com", domain.RoleUser)
	b := seed(t, repo, "b@x.com", domain.RoleUser)

	got, err := svc.Get(ctx, a, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	// A 拿 B 的记录 → Forbidden
	_, err = svc.Get(ctx, a, b.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err = svc.Get(ctx, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestGetDoesNotLeakExistence(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	admin := seed(t, repo, "admin@x.com", domain.RoleAdmin)
	a := seed(t, repo, "a@x.com", domain.RoleUser)

	// 非 admin 查不存在的 id → Forbidden 而不是 NotFound
	_, err := svc.Get(ctx, a, 999)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// admin 才能看到 NotFound
	_, err = svc.Get(ctx, admin, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateSelfStripsRoleAndActive(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	a := seed(t, repo, "a@x.com", domain.RoleUser)

	role := domain.RoleAdmin
	active := false
	got, err := svc.Update(ctx, a, a.ID, domain.UpdateInput{
		Name: "New", Surname: "Name", Email: "a@x.com", Role: &role, Active: &active,
	})
	require.NoError(t, err)
	// 自助提权被剥掉
	assert.Equal(t, domain.RoleUser, got.Role)
	assert.True(t, got.Active)
	assert.Equal(t, "New", got.Name)
}

func TestUpdateOtherForbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	a := seed(t, repo, "a@x.com", domain.RoleUser)
	b := seed(t, repo, "b@x.com", domain.RoleUser)

	_, err := svc.Update(ctx, a, b.ID, domain.UpdateInput{
		Name: "Hax", Surname: "Or", Email: "b@x.com",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateByAdminAppliesRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	admin := seed(t, repo, "admin@x.com", domain.RoleAdmin)
	b := seed(t, repo, "b@x.com", domain.RoleUser)

	role := domain.RoleAdmin
	got, err := svc.Update(ctx, admin, b.ID, domain.UpdateInput{
		Name: b.Name, Surname: b.Surname, Email: b.Email, Role: &role,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	// 枚举之外的值直接拒绝
	bad := domain.Role("root")
	_, err = svc.Update(ctx, admin, b.ID, domain.UpdateInput{
		Name: b.Name, Surname: b.Surname, Email: b.Email, Role: &bad,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUpdateRolePolicy(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	admin := seed(t, repo, "admin@x.com", domain.RoleAdmin)
	bob := seed(t, repo, "bob@x.com", domain.RoleUser)

	got, err := svc.UpdateRole(ctx, admin, bob.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	persisted, err := repo.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, persisted.Role)

	// 非 admin → Forbidden，角色不动
	carol := seed(t, repo, "carol@x.com", domain.RoleUser)
	_, err = svc.UpdateRole(ctx, carol, admin.ID, domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	stillAdmin, _ := repo.FindByID(ctx, admin.ID)
	assert.Equal(t, domain.RoleAdmin, stillAdmin.Role)

	// 无效角色值
	_, err = svc.UpdateRole(ctx, admin, bob.ID, domain.Role("superuser"))
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	// 目标不存在
	_, err = svc.UpdateRole(ctx, admin, 999, domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeletePolicy(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	admin := seed(t, repo, "admin@x.com", domain.RoleAdmin)
	bob := seed(t, repo, "bob@x.com", domain.RoleUser)

	_, err := svc.Delete(ctx, bob, admin.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	snap, err := svc.Delete(ctx, admin, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, snap.ID)

	_, err = svc.Delete(ctx, admin, bob.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSetSalaryPolicy(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	admin := seed(t, repo, "admin@x.com", domain.RoleAdmin)
	bob := seed(t, repo, "bob@x.com", domain.RoleUser)

	s := 4200.0
	d, err := svc.SetSalary(ctx, admin, bob.ID, &s)
	require.NoError(t, err)
	require.NotNil(t, d.Salary)
	assert.Equal(t, s, *d.Salary)

	// 本人也不行，薪资只归 admin 管
	_, err = svc.SetSalary(ctx, bob, bob.ID, &s)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.SetSalary(ctx, admin, 999, &s)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
