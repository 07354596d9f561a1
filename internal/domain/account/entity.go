package account

import (
	"strings"
	"time"
)

// Account 账号实体
// 凭证(salted_hash/salt)单独存放在Credential中,Account从不携带密码
type Account struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	Email     string
	Phone     string
	Role      int
	CreatedAt time.Time
}

// Credential 账号凭证(account_credential表)
// bcrypt方案下Salt为空,盐值包含在SaltedHash中
type Credential struct {
	AccountID  int64
	SaltedHash string
	Salt       string
}

// Registration 注册输入
type Registration struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Phone     string
	Password  string
}

// Validate 所有字段必须为非空字符串
func (r Registration) Validate() error {
	if anyBlank(r.FirstName, r.LastName, r.Username, r.Email, r.Phone, r.Password) {
		return ErrMissingInfo
	}
	return nil
}

// Details 可修改的个人资料
type Details struct {
	FirstName string
	LastName  string
	Username  string
	Phone     string
}

// Validate 所有字段必须为非空字符串
func (d Details) Validate() error {
	if anyBlank(d.FirstName, d.LastName, d.Username, d.Phone) {
		return ErrMissingInfo
	}
	return nil
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
