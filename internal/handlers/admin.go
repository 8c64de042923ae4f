package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/maisonrony/shop_backend/internal/auth"
	"github.com/maisonrony/shop_backend/internal/hash"
	"github.com/maisonrony/shop_backend/internal/models"
)

type AdminHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
	Secure    bool
}

func adminJSON(a *models.Admin) echo.Map {
	return echo.Map{
		"id":    a.ID,
		"nom":   a.Nom,
		"email": a.Email,
		"role":  a.Role,
	}
}

func (h *AdminHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}

	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Email et mot de passe requis.")
	}

	var admin models.Admin
	if err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&admin).Error; err != nil {
		return respondError(c, http.StatusUnauthorized, "Identifiants incorrects.")
	}

	if !hash.CheckPassword(admin.Password, req.Password) {
		return respondError(c, http.StatusUnauthorized, "Identifiants incorrects.")
	}

	if !admin.Actif {
		return respondError(c, http.StatusForbidden, "Compte désactivé.")
	}

	token, err := auth.GenerateToken(&admin, h.JWTSecret)
	if err != nil {
		return internalError(c, "Erreur serveur lors de la connexion.", err)
	}

	now := time.Now()
	admin.DerniereConnexion = &now
	if err := h.DB.Save(&admin).Error; err != nil {
		return internalError(c, "Erreur serveur lors de la connexion.", err)
	}

	c.SetCookie(auth.CreateCookie(token, h.Secure, now.Add(auth.CookieTTL)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Connexion réussie",
		"admin":   adminJSON(&admin),
	})
}

func (h *AdminHandler) Logout(c echo.Context) error {
	c.SetCookie(auth.ClearCookie(h.Secure))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Déconnexion réussie",
	})
}

func (h *AdminHandler) Me(c echo.Context) error {
	var admin models.Admin
	if err := h.DB.First(&admin, auth.AdminID(c)).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Administrateur introuvable.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"admin": echo.Map{
			"id":                admin.ID,
			"nom":               admin.Nom,
			"email":             admin.Email,
			"role":              admin.Role,
			"derniereConnexion": admin.DerniereConnexion,
		},
	})
}

// CreateFirst bootstraps the very first account. It is public and shuts
// itself off as soon as any admin exists.
func (h *AdminHandler) CreateFirst(c echo.Context) error {
	var count int64
	if err := h.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return internalError(c, "Erreur lors de la création.", err)
	}
	if count > 0 {
		return respondError(c, http.StatusBadRequest, "Un administrateur existe déjà.")
	}

	var req struct {
		Nom      string `json:"nom"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}
	if req.Nom == "" || req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Tous les champs sont requis.")
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return internalError(c, "Erreur lors de la création.", err)
	}

	admin := models.Admin{
		Nom:      req.Nom,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		Role:     models.RoleSuperAdmin,
		Actif:    true,
	}
	if err := h.DB.Create(&admin).Error; err != nil {
		return internalError(c, "Erreur lors de la création.", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Premier administrateur créé avec succès",
		"admin":   adminJSON(&admin),
	})
}

func (h *AdminHandler) Create(c echo.Context) error {
	var req struct {
		Nom      string `json:"nom"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}
	if req.Nom == "" || req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Nom, email et mot de passe requis.")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.Admin
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return respondError(c, http.StatusBadRequest, "Cet email est déjà utilisé.")
	}

	role := req.Role
	if role != models.RoleSuperAdmin {
		role = models.RoleAdmin
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return internalError(c, "Erreur lors de la création.", err)
	}

	admin := models.Admin{
		Nom:      req.Nom,
		Email:    email,
		Password: hashed,
		Role:     role,
		Actif:    true,
	}
	if err := h.DB.Create(&admin).Error; err != nil {
		return internalError(c, "Erreur lors de la création.", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Administrateur créé avec succès",
		"admin":   adminJSON(&admin),
	})
}

func (h *AdminHandler) List(c echo.Context) error {
	var admins []models.Admin
	if err := h.DB.Order("created_at DESC").Find(&admins).Error; err != nil {
		return internalError(c, "Erreur serveur.", err)
	}

	out := make([]echo.Map, len(admins))
	for i := range admins {
		a := &admins[i]
		out[i] = echo.Map{
			"id":                a.ID,
			"nom":               a.Nom,
			"email":             a.Email,
			"role":              a.Role,
			"actif":             a.Actif,
			"derniereConnexion": a.DerniereConnexion,
			"createdAt":         a.CreatedAt,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(out),
		"admins":  out,
	})
}

func (h *AdminHandler) ToggleStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	// Whatever the role, an admin never flips their own switch.
	if uint(id) == auth.AdminID(c) {
		return respondError(c, http.StatusBadRequest, "Vous ne pouvez pas modifier votre propre statut.")
	}

	var admin models.Admin
	if err := h.DB.First(&admin, id).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Administrateur introuvable.")
	}

	admin.Actif = !admin.Actif
	if err := h.DB.Save(&admin).Error; err != nil {
		return internalError(c, "Erreur serveur.", err)
	}

	msg := "Administrateur désactivé"
	if admin.Actif {
		msg = "Administrateur activé"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": msg,
		"admin": echo.Map{
			"id":    admin.ID,
			"nom":   admin.Nom,
			"email": admin.Email,
			"actif": admin.Actif,
		},
	})
}

func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	if uint(id) == auth.AdminID(c) {
		return respondError(c, http.StatusBadRequest, "Vous ne pouvez pas supprimer votre propre compte.")
	}

	var admin models.Admin
	if err := h.DB.First(&admin, id).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Administrateur introuvable.")
	}

	if err := h.DB.Delete(&admin).Error; err != nil {
		return internalError(c, "Erreur serveur.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Administrateur supprimé avec succès",
	})
}
