package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/maisonrony/shop_backend/internal/models"
)

// CookieName carries the signed admin credential. The cookie itself lives
// seven days but the token inside expires after 24 hours: an expired token
// in a still-valid cookie forces a fresh login.
const (
	CookieName = "token"
	TokenTTL   = 24 * time.Hour
	CookieTTL  = 7 * 24 * time.Hour
)

func GenerateToken(admin *models.Admin, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":   admin.ID,
		"email": admin.Email,
		"role":  admin.Role,
		"exp":   time.Now().Add(TokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func CreateCookie(value string, secure bool, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func ClearCookie(secure bool) *http.Cookie {
	c := CreateCookie("", secure, time.Now().Add(-time.Hour))
	c.MaxAge = -1
	return c
}
