package auth

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/maisonrony/shop_backend/internal/models"
)

// Context keys populated by VerifyAdmin for downstream handlers.
const (
	CtxAdminID    = "adminID"
	CtxAdminEmail = "adminEmail"
	CtxAdminRole  = "adminRole"
)

type Guard struct {
	DB     *gorm.DB
	Secret []byte
}

// VerifyAdmin is the single access-control boundary for admin routes:
// cookie -> signature/expiry -> role -> live account re-check. Token
// validity alone is not enough, the admin may have been deactivated
// after issuance.
func (g *Guard) VerifyAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Accès non autorisé. Token manquant.",
			})
		}

		token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return g.Secret, nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Session expirée. Veuillez vous reconnecter.",
				})
			}
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Token invalide.",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Token invalide.",
			})
		}

		role, _ := claims["role"].(string)
		if role != models.RoleAdmin && role != models.RoleSuperAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"message": "Accès refusé. Droits administrateur requis.",
			})
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Token invalide.",
			})
		}

		var admin models.Admin
		if err := g.DB.First(&admin, uint(sub)).Error; err != nil || !admin.Actif {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Compte administrateur introuvable ou désactivé.",
			})
		}

		c.Set(CtxAdminID, admin.ID)
		c.Set(CtxAdminEmail, admin.Email)
		c.Set(CtxAdminRole, admin.Role)

		return next(c)
	}
}

// RequireRole layers on VerifyAdmin for routes reserved to one role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r, _ := c.Get(CtxAdminRole).(string); r != role {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"message": "Accès refusé.",
				})
			}
			return next(c)
		}
	}
}

// AdminID returns the authenticated admin's id stashed by VerifyAdmin.
func AdminID(c echo.Context) uint {
	id, _ := c.Get(CtxAdminID).(uint)
	return id
}
