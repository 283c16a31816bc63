package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"user-role-system/internal/domain"
	"user-role-system/internal/service"
	mdw "user-role-system/internal/transport/http/middleware"
	resp "user-role-system/internal/transport/http/response"
)

// userOut 对外表示，永远不带密码哈希；薪资明细只给 admin
type userOut struct {
	ID      uint                `json:"id"`
	Name    string              `json:"name"`
	Surname string              `json:"surname"`
	Email   string              `json:"email"`
	Phone   string              `json:"phone"`
	Role    domain.Role         `json:"role"`
	Active  bool                `json:"active"`
	Details *domain.UserDetails `json:"details,omitempty"`
}

func toUserOut(u *domain.User, withDetails bool) userOut {
	out := userOut{
		ID:      u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
		Phone:   u.Phone,
		Role:    u.Role,
		Active:  u.Active,
	}
	if withDetails {
		out.Details = u.Details
	}
	return out
}

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "invalid id"))
		return 0, false
	}
	return uint(id), true
}

// List GET /users（admin）
func (h *UserHandler) List(c *gin.Context) {
	caller := mdw.Caller(c)
	us, err := h.users.List(c.Request.Context(), caller)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromErr(err))
		return
	}
	items := make([]userOut, 0, len(us))
	for i := range us {
		items = append(items, toUserOut(&us[i], true))
	}
	c.JSON(http.StatusOK, resp.OK(items))
}

// Search GET /users?q=&offset=&limit=（管理端分页列表）
func (h *UserHandler) Search(c *gin.Context) {
	var in struct {
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
		Q      string `form:"q"`
	}
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	caller := mdw.Caller(c)
	us, total, err := h.users.Search(c.Request.Context(), caller, in.Q, in.Offset, in.Limit)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromErr(err))
		return
	}
	items := make([]userOut, 0, len(us))
	for i := range us {
		items = append(items, toUserOut(&us[i], true))
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"total": total, "items": items}))
}

// Get GET /users/:id（本人或 admin）
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	caller := mdw.Caller(c)
	u, err := h.users.Get(c.Request.Context(), caller, id)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(toUserOut(u, caller.IsAdmin())))
}

type updateIn struct {
	Name    string       `json:"name"    binding:"required,max=64"`
	Surname string       `json:"surname" binding:"required,max=64"`
	Email   string       `json:"email"   binding:"required,email"`
	Phone   string       `json:"phone"   binding:"omitempty,max=32"`
	Role    *domain.Role `json:"role"`   // 缺省 = 不改；非 admin 调用者会被忽略
	Active  *bool        `json:"active"` // 同上
}

// Update PUT /users/:id（本人或 admin）
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in updateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	caller := mdw.Caller(c)
	u, err := h.users.Update(c.Request.Context(), caller, id, domain.UpdateInput{
		Name:    in.Name,
		Surname: in.Surname,
		Email:   in.Email,
		Phone:   in.Phone,
		Role:    in.Role,
		Active:  in.Active,
	})
	if err != nil {
		c.JSON(http.StatusOK, resp.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(toUserOut(u, caller.IsAdmin())))
}

// UpdateRole PUT /users/:id/role（admin）
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in struct {
		Role domain.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, err := h.users.UpdateRole(c.Request.Context(), mdw.Caller(c), id, in.Role)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"message": fmt.Sprintf("role of %s %s changed to %s", u.Name, u.Surname, u.Role),
	}))
}

// Delete DELETE /users/:id（admin，硬删并级联薪资明细）
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.users.Delete(c.Request.Context(), mdw.Caller(c), id)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"message": fmt.Sprintf("user %s %s deleted", u.Name, u.Surname),
	}))
}

// SetSalary POST /users/:id/salary（admin）
func (h *UserHandler) SetSalary(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in struct {
		Salary *float64 `json:"salary"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	d, err := h.users.SetSalary(c.Request.Context(), mdw.Caller(c), id, in.Salary)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(d))
}
