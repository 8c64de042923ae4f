package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/maisonrony/shop_backend/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection, otherwise every pooled conn gets its own empty
	// in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Image{},
		&models.Promotion{},
		&models.Review{},
		&models.Analytics{},
		&models.AnalyticsProduit{},
		&models.AnalyticsCategorie{},
	))
	return db
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createCategory(t *testing.T, db *gorm.DB, nom string) *models.Category {
	cat := models.Category{Nom: nom, Actif: true}
	require.NoError(t, db.Create(&cat).Error)
	return &cat
}

func createImage(t *testing.T, db *gorm.DB, categoryID uint, nom string) *models.Image {
	img := models.Image{
		URL:         "https://cdn.example.com/" + nom + ".jpg",
		PublicID:    "shop/" + nom,
		Nom:         nom,
		CategorieID: categoryID,
		EnStock:     true,
		Quantite:    1,
		Devise:      "FCFA",
		Actif:       true,
	}
	require.NoError(t, db.Create(&img).Error)
	return &img
}
