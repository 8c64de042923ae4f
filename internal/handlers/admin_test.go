package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/maisonrony/shop_backend/internal/auth"
	"github.com/maisonrony/shop_backend/internal/hash"
	"github.com/maisonrony/shop_backend/internal/models"
)

var testJWTSecret = []byte("test-secret")

func newAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db, JWTSecret: testJWTSecret}
}

func seedAdmin(t *testing.T, db *gorm.DB, email, password, role string) *models.Admin {
	hashed, err := hash.HashPassword(password)
	require.NoError(t, err)

	admin := models.Admin{Nom: "Rony", Email: email, Password: hashed, Role: role, Actif: true}
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func TestCreateFirstAdmin(t *testing.T) {
	db := initTestDB(t)
	h := newAdminHandler(db)

	payload := map[string]string{"nom": "Rony", "email": "Rony@Example.com", "password": "secret123"}
	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/create-first", payload)
	require.NoError(t, h.CreateFirst(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var admin models.Admin
	require.NoError(t, db.First(&admin).Error)
	require.Equal(t, "rony@example.com", admin.Email)
	require.Equal(t, models.RoleSuperAdmin, admin.Role)
	require.NotEqual(t, "secret123", admin.Password)

	// Second call is refused once any admin exists.
	rec, c = jsonRequest(t, http.MethodPost, "/api/admin/create-first", payload)
	require.NoError(t, h.CreateFirst(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "existe déjà")
}

func TestLogin(t *testing.T) {
	db := initTestDB(t)
	h := newAdminHandler(db)
	seedAdmin(t, db, "rony@example.com", "secret123", models.RoleAdmin)

	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/login",
		map[string]string{"email": "rony@example.com", "password": "secret123"})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, auth.CookieName, cookies[0].Name)
	require.NotEmpty(t, cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)

	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])
	require.NotContains(t, rec.Body.String(), "password")

	var admin models.Admin
	require.NoError(t, db.First(&admin).Error)
	require.NotNil(t, admin.DerniereConnexion)
}

func TestLoginBadCredentials(t *testing.T) {
	db := initTestDB(t)
	h := newAdminHandler(db)
	seedAdmin(t, db, "rony@example.com", "secret123", models.RoleAdmin)

	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/login",
		map[string]string{"email": "rony@example.com", "password": "wrong"})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Identifiants incorrects")

	rec, c = jsonRequest(t, http.MethodPost, "/api/admin/login",
		map[string]string{"email": "nobody@example.com", "password": "secret123"})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	db := initTestDB(t)
	h := newAdminHandler(db)
	admin := seedAdmin(t, db, "rony@example.com", "secret123", models.RoleAdmin)
	require.NoError(t, db.Model(admin).Update("actif", false).Error)

	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/login",
		map[string]string{"email": "rony@example.com", "password": "secret123"})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "Compte désactivé")
}

func TestLogoutClearsCookie(t *testing.T) {
	h := newAdminHandler(initTestDB(t))

	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/logout", nil)
	require.NoError(t, h.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	db := initTestDB(t)
	h := newAdminHandler(db)
	seedAdmin(t, db, "rony@example.com", "secret123", models.RoleSuperAdmin)

	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/create",
		map[string]string{"nom": "Dup", "email": "RONY@example.com", "password": "pwd12345"})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "déjà utilisé")
}

func TestCreateAdminRoleDefaultsToAdmin(t *testing.T) {
	db := initTestDB(t)
	h := newAdminHandler(db)

	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/create",
		map[string]string{"nom": "B", "email": "b@example.com", "password": "pwd12345", "role": "root"})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var admin models.Admin
	require.NoError(t, db.Where("email = ?", "b@example.com").First(&admin).Error)
	require.Equal(t, models.RoleAdmin, admin.Role)
}

func TestToggleStatusRejectsSelf(t *testing.T) {
	db := initTestDB(t)
	h := newAdminHandler(db)
	admin := seedAdmin(t, db, "rony@example.com", "secret123", models.RoleSuperAdmin)

	rec, c := jsonRequest(t, http.MethodPut, "/api/admin/1/toggle-status", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set(auth.CtxAdminID, admin.ID)

	require.NoError(t, h.ToggleStatus(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "votre propre statut")
}

func TestToggleStatusFlips(t *testing.T) {
	db := initTestDB(t)
	h := newAdminHandler(db)
	self := seedAdmin(t, db, "rony@example.com", "secret123", models.RoleSuperAdmin)
	other := seedAdmin(t, db, "other@example.com", "secret123", models.RoleAdmin)

	rec, c := jsonRequest(t, http.MethodPut, "/api/admin/2/toggle-status", nil)
	c.SetParamNames("id")
	c.SetParamValues("2")
	c.Set(auth.CtxAdminID, self.ID)

	require.NoError(t, h.ToggleStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "désactivé")

	var reloaded models.Admin
	require.NoError(t, db.First(&reloaded, other.ID).Error)
	require.False(t, reloaded.Actif)
}

func TestDeleteAdminRejectsSelf(t *testing.T) {
	db := initTestDB(t)
	h := newAdminHandler(db)
	admin := seedAdmin(t, db, "rony@example.com", "secret123", models.RoleSuperAdmin)

	rec, c := jsonRequest(t, http.MethodDelete, "/api/admin/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set(auth.CtxAdminID, admin.ID)

	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "votre propre compte")

	var count int64
	require.NoError(t, db.Model(&models.Admin{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
