package dto

import (
	"time"

	"github.com/samber/lo"

	"github.com/xiebiao/booksapi/internal/domain/account"
)

// RegisterRequest 注册请求体
// 必填校验在领域层完成,统一返回"Missing required information"
type RegisterRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// LoginRequest 登录请求体
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateDetailsRequest 资料更新请求体
type UpdateDetailsRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Username  string `json:"username"`
	Phone     string `json:"phone"`
}

// UserResponse 用户信息(不含凭证)
type UserResponse struct {
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	ID        int64     `json:"id"`
	CreateDt  time.Time `json:"createDt"`
	Password  string    `json:"password,omitempty"`
}

// maskedPassword /users系列接口中password字段的固定值
const maskedPassword = "nope"

// NewUserResponse 注册/登录返回的用户信息
func NewUserResponse(a *account.Account) UserResponse {
	return UserResponse{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Username:  a.Username,
		Email:     a.Email,
		Phone:     a.Phone,
		ID:        a.ID,
		CreateDt:  a.CreatedAt,
	}
}

// NewMaskedUser /users接口返回的用户,password固定为"nope"
func NewMaskedUser(a *account.Account) UserResponse {
	u := NewUserResponse(a)
	u.Password = maskedPassword
	return u
}

// NewMaskedUsers 批量映射
func NewMaskedUsers(accounts []*account.Account) []UserResponse {
	return lo.Map(accounts, func(a *account.Account, _ int) UserResponse {
		return NewMaskedUser(a)
	})
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

// TokenTestResponse /jwt_test 响应
type TokenTestResponse struct {
	Message string `json:"message"`
}
