package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"user-role-system/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		// 唯一索引是最终防线，上层的预检查挡不住并发注册
		if isDupKey(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// FindByID 查不到返回 (nil, nil)
func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Preload("Details").First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Preload("Details").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Search 管理端分页列表，q 按 email/name/surname 模糊搜
func (r *UserRepo) Search(ctx context.Context, q string, offset, limit int) ([]domain.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.User{})
	if s := strings.TrimSpace(q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("email LIKE ? OR name LIKE ? OR surname LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	if err := tx.Preload("Details").Order("id").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update 覆盖 name/surname/email/phone；Role/Active 仅在载荷给了值时生效
func (r *UserRepo) Update(ctx context.Context, id uint, in domain.UpdateInput) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
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
		if err := tx.Save(&u).Error; err != nil {
			if isDupKey(err) {
				return domain.ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UpdateRole(ctx context.Context, id uint, role domain.Role) (*domain.User, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete 硬删，连同 userdetails 一起，返回删除前的快照
func (r *UserRepo) Delete(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Details").First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		// 级联：不依赖各驱动的外键开关
		if err := tx.Where("user_id = ?", id).Delete(&domain.UserDetails{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.User{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UpsertSalary(ctx context.Context, userID uint, salary *float64) (*domain.UserDetails, error) {
	var d domain.UserDetails
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&domain.User{}).Where("id = ?", userID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return domain.ErrUserNotFound
		}
		err := tx.First(&d, "user_id = ?", userID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			d = domain.UserDetails{UserID: userID, Salary: salary}
			return tx.Create(&d).Error
		case err != nil:
			return err
		default:
			d.Salary = salary
			return tx.Save(&d).Error
		}
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "constraint failed")
}
