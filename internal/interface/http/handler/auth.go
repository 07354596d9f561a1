package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	appaccount "github.com/xiebiao/booksapi/internal/application/account"
	"github.com/xiebiao/booksapi/internal/domain/account"
	"github.com/xiebiao/booksapi/internal/interface/http/dto"
	"github.com/xiebiao/booksapi/internal/interface/http/middleware"
	"github.com/xiebiao/booksapi/pkg/credential"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
	"github.com/xiebiao/booksapi/pkg/response"
)

// demoPassword /hash_demo 使用的固定密码
const demoPassword = "password12345"

// AuthHandler 注册、登录、登出
type AuthHandler struct {
	register *appaccount.RegisterUseCase
	login    *appaccount.LoginUseCase
	logout   *appaccount.LogoutUseCase
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(
	register *appaccount.RegisterUseCase,
	login *appaccount.LoginUseCase,
	logout *appaccount.LogoutUseCase,
) *AuthHandler {
	return &AuthHandler{register: register, login: login, logout: logout}
}

// Register 用户注册
// @Summary      用户注册
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body  dto.RegisterRequest  true  "注册信息"
// @Success      201 {object} dto.AuthResponse
// @Failure      400 {object} response.Message "Missing required information / Username exists / Email exists"
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, account.ErrMissingInfo)
		return
	}

	result, err := h.register.Execute(c.Request.Context(), appaccount.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.AuthResponse{
		AccessToken: result.AccessToken,
		User:        dto.NewUserResponse(result.Account),
	})
}

// Login 用户登录
// @Summary      用户登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body  dto.LoginRequest  true  "邮箱和密码"
// @Success      200 {object} dto.AuthResponse
// @Failure      400 {object} response.Message "Credentials did not match"
// @Failure      404 {object} response.Message "User not found"
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, account.ErrMissingInfo)
		return
	}

	result, err := h.login.Execute(c.Request.Context(), appaccount.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.AuthResponse{
		AccessToken: result.AccessToken,
		User:        dto.NewUserResponse(result.Account),
	})
}

// HashDemo 演示加盐哈希
// @Summary      哈希演示
// @Tags         认证
// @Produce      json
// @Success      200 {object} credential.Demo
// @Router       /hash_demo [get]
func (h *AuthHandler) HashDemo(c *gin.Context) {
	demo, err := credential.NewDemo(demoPassword)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, demo)
}

// TokenTest 校验Token并返回其中的角色
// @Summary      Token测试
// @Tags         认证
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200 {object} dto.TokenTestResponse
// @Failure      401 {object} response.AuthFailure
// @Failure      403 {object} response.AuthFailure
// @Router       /jwt_test [get]
func (h *AuthHandler) TokenTest(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.AbortAuth(c, apperrors.ErrUnauthorized)
		return
	}
	response.OK(c, dto.TokenTestResponse{
		Message: fmt.Sprintf("Your token is valid and your role is: %d", claims.Role),
	})
}

// Logout 注销当前Token
// @Summary      登出
// @Tags         认证
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200 {object} response.Message
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.AbortAuth(c, apperrors.ErrUnauthorized)
		return
	}

	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := h.logout.Execute(c.Request.Context(), claims.ID, middleware.GetToken(c), expiresAt); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Message{Message: "Logged out"})
}
