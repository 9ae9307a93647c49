package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordSymbols 强密码必须包含的特殊字符集合
const PasswordSymbols = "@$!%*?&"

const (
	minPasswordLength = 8
	// MaxPasswordBytes bcrypt 只接受 72 字节以内的输入
	MaxPasswordBytes = 72
	bcryptCost       = 10
)

// IsStrongPassword 长度在 8 到 MaxPasswordBytes 字节之间，且同时包含 ASCII 小写字母、大写字母、数字和 PasswordSymbols 中的字符
func IsStrongPassword(password string) bool {
	if len(password) < minPasswordLength || len(password) > MaxPasswordBytes {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// HashPassword 使用 bcrypt 生成带盐哈希
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword 校验明文密码与哈希是否匹配
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
