package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
)

const (
	sessionCookieName = "portfolio_session"
	minSecretLen      = 32
)

// now is replaced in tests.
var now = time.Now

// CreateSessionToken はユーザーIDと有効期限から署名付きセッショントークンを生成する
func CreateSessionToken(userID string, secret []byte, ttl time.Duration) string {
	payload := userID + "|" + strconv.FormatInt(now().Add(ttl).Unix(), 10)
	return base64.URLEncoding.EncodeToString([]byte(payload)) + "." + sign(payload, secret)
}

// VerifySessionToken は署名と有効期限を検証しユーザーIDを返す
func VerifySessionToken(token string, secret []byte) (string, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrInvalidToken
	}
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidToken
	}
	payload := string(raw)
	if !hmac.Equal([]byte(sign(payload, secret)), []byte(sig)) {
		return "", ErrInvalidToken
	}

	i := strings.LastIndexByte(payload, '|')
	if i < 0 {
		return "", ErrInvalidToken
	}
	exp, err := strconv.ParseInt(payload[i+1:], 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !now().Before(time.Unix(exp, 0)) {
		return "", ErrTokenExpired
	}
	return payload[:i], nil
}

func sign(payload string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// SessionCookieName はセッションクッキー名
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes は文字列からセッション署名用のバイト列を生成する（最低32バイト）
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
