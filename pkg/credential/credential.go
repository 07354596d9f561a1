// Package credential 提供密码加盐哈希与盐值生成
//
// 默认方案sha256与历史账号数据兼容：salted_hash = hex(sha256(password + salt))。
// bcrypt方案供新部署使用，此时salt列为空，盐值内嵌在哈希串中。
package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"

	// DefaultSaltSize 默认盐值字节数（hex编码后64个字符）
	DefaultSaltSize = 32
)

// Hash 计算 sha256(password + salt) 的十六进制摘要
func Hash(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// GenerateSalt 生成size字节的随机盐值并hex编码
func GenerateSalt(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("invalid salt size: %d", size)
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Hasher 密码哈希策略
type Hasher interface {
	// Hash 返回要落库的salted_hash与salt
	Hash(password string) (saltedHash, salt string, err error)
	// Verify 校验明文密码
	Verify(password, saltedHash, salt string) bool
}

// NewHasher 按方案名创建Hasher
func NewHasher(scheme string, saltSize int) (Hasher, error) {
	switch scheme {
	case "", SchemeSHA256:
		if saltSize <= 0 {
			saltSize = DefaultSaltSize
		}
		return &SHA256Hasher{SaltSize: saltSize}, nil
	case SchemeBcrypt:
		return &BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown hash scheme: %q", scheme)
	}
}

// SHA256Hasher 加盐sha256（无迭代）
type SHA256Hasher struct {
	SaltSize int
}

func (h *SHA256Hasher) Hash(password string) (string, string, error) {
	salt, err := GenerateSalt(h.SaltSize)
	if err != nil {
		return "", "", err
	}
	return Hash(password, salt), salt, nil
}

func (h *SHA256Hasher) Verify(password, saltedHash, salt string) bool {
	computed := Hash(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(saltedHash)) == 1
}

// BcryptHasher bcrypt哈希
type BcryptHasher struct {
	Cost int
}

func (h *BcryptHasher) Hash(password string) (string, string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hashed), "", nil
}

func (h *BcryptHasher) Verify(password, saltedHash, _ string) bool {
	return bcrypt.CompareHashAndPassword([]byte(saltedHash), []byte(password)) == nil
}

// Demo 演示同一密码加盐与不加盐的哈希结果
type Demo struct {
	Salt         string `json:"salt"`
	SaltedHash   string `json:"salted_hash"`
	UnsaltedHash string `json:"unsalted_hash"`
}

// NewDemo 生成演示数据
func NewDemo(password string) (*Demo, error) {
	salt, err := GenerateSalt(DefaultSaltSize)
	if err != nil {
		return nil, err
	}
	return &Demo{
		Salt:         salt,
		SaltedHash:   Hash(password, salt),
		UnsaltedHash: Hash(password, ""),
	}, nil
}
