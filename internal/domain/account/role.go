package account

import (
	"math/rand/v2"
)

// 角色取值范围
const (
	MinRole = 0
	MaxRole = 2
)

// RolePolicy 注册时为新账号分配角色
type RolePolicy func() int

// FixedRole 所有新账号使用同一角色
func FixedRole(role int) RolePolicy {
	return func() int { return role }
}

// RandomRole 在0-2之间均匀随机分配(旧系统的演示行为)
func RandomRole() RolePolicy {
	return func() int { return rand.IntN(MaxRole + 1) }
}
