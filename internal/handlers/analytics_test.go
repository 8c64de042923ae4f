package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maisonrony/shop_backend/internal/models"
)

func TestRecordVisitEndpoint(t *testing.T) {
	db := initTestDB(t)
	h := &AnalyticsHandler{DB: db}

	for i := 0; i < 3; i++ {
		rec, c := jsonRequest(t, http.MethodPost, "/api/admin/analytics/visite", nil)
		require.NoError(t, h.RecordVisit(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var bucket models.Analytics
	require.NoError(t, db.Where("date = ?", models.Day(time.Now())).First(&bucket).Error)
	require.Equal(t, 3, bucket.Visites)
}

func TestRecordOrderEndpoint(t *testing.T) {
	db := initTestDB(t)
	h := &AnalyticsHandler{DB: db}

	payload := map[string]interface{}{
		"produitId":    7,
		"produitNom":   "Perruque lace",
		"categorieId":  2,
		"categorieNom": "Perruques",
	}
	for i := 0; i < 2; i++ {
		rec, c := jsonRequest(t, http.MethodPost, "/api/admin/analytics/commande", payload)
		require.NoError(t, h.RecordOrder(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var bucket models.Analytics
	require.NoError(t, db.Preload("Produits").
		Where("date = ?", models.Day(time.Now())).First(&bucket).Error)
	require.Equal(t, 2, bucket.Commandes)
	require.Len(t, bucket.Produits, 1)
	require.Equal(t, 2, bucket.Produits[0].Commandes)
	require.Equal(t, "Perruque lace", bucket.Produits[0].Nom)
}

func TestDashboardEndpoint(t *testing.T) {
	db := initTestDB(t)
	h := &AnalyticsHandler{DB: db}

	require.NoError(t, db.Create(&models.Analytics{
		Date: models.Day(time.Now()), Visites: 4, Commandes: 1,
	}).Error)

	rec, c := jsonRequest(t, http.MethodGet, "/api/admin/analytics/dashboard", nil)
	require.NoError(t, h.Dashboard(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	chart := body["chartData"].([]interface{})
	require.Len(t, chart, 30)

	stats := body["stats"].(map[string]interface{})
	require.EqualValues(t, 4, stats["totalVisites"])
	require.EqualValues(t, 1, stats["totalCommandes"])
	require.Equal(t, "Aucun", stats["topProduit"].(map[string]interface{})["nom"])
}
