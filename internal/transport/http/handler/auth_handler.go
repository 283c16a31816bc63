package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"user-role-system/internal/service"
	mdw "user-role-system/internal/transport/http/middleware"
	resp "user-role-system/internal/transport/http/response"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerIn struct {
	Name     string `json:"name"     binding:"required,max=64"`
	Surname  string `json:"surname"  binding:"required,max=64"`
	Email    string `json:"email"    binding:"required,email"`
	Phone    string `json:"phone"    binding:"omitempty,max=32"`
	Password string `json:"password" binding:"required"`
}

// Register POST /auth/register（公共）
func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:     in.Name,
		Surname:  in.Surname,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
	})
	if err != nil {
		c.JSON(http.StatusOK, resp.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(toUserOut(u, false)))
}

type loginIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /auth/login（公共）
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	tok, u, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"token": tok,
		"user":  toUserOut(u, false),
	}))
}

// Me GET /me（鉴权）
func (h *AuthHandler) Me(c *gin.Context) {
	caller := mdw.Caller(c)
	c.JSON(http.StatusOK, resp.OK(toUserOut(caller, caller.IsAdmin())))
}
