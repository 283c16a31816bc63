package domain

import (
	"context"
	"time"
)

// Role 闭合枚举："user" / "admin"
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	Surname      string    `gorm:"size:64;not null" json:"surname"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Phone        string    `gorm:"size:32" json:"phone"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:user" json:"role"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// 每个用户至多一条薪资明细，随用户级联删除
	Details *UserDetails `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

type UserDetails struct {
	ID     uint     `gorm:"primaryKey" json:"id"`
	UserID uint     `gorm:"uniqueIndex;not null" json:"userId"`
	Salary *float64 `json:"salary"`
}

func (UserDetails) TableName() string { return "userdetails" }

// UpdateInput 资料更新载荷。Role/Active 为 nil 表示保持不变
type UpdateInput struct {
	Name    string
	Surname string
	Email   string
	Phone   string
	Role    *Role
	Active  *bool
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ListAll(ctx context.Context) ([]User, error)
	Search(ctx context.Context, q string, offset, limit int) ([]User, int64, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*User, error)
	UpdateRole(ctx context.Context, id uint, role Role) (*User, error)
	Delete(ctx context.Context, id uint) (*User, error)
	UpsertSalary(ctx context.Context, userID uint, salary *float64) (*UserDetails, error)
}
