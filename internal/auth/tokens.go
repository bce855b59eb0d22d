package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// opaqueTokenBytes - размер случайной части непрозрачных токенов
// (refresh, верификация email, сброс пароля). 40 байт = 80 hex-символов.
const opaqueTokenBytes = 40

// NewOpaqueToken возвращает криптографически случайную непрозрачную строку.
// Используется для refresh-токенов и одноразовых email-токенов.
func NewOpaqueToken() (string, error) {
	buf := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
