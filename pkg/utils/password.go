package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt 只取前 72 字节，超长部分截断（与校验端保持一致）
const bcryptMaxLen = 72

func truncate(pw string) []byte {
	b := []byte(pw)
	if len(b) > bcryptMaxLen {
		b = b[:bcryptMaxLen]
	}
	return b
}

func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword(truncate(pw), bcrypt.DefaultCost)
	return string(b)
}

// CheckPassword 不匹配只返回 false，不报错
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), truncate(pw)) == nil
}
