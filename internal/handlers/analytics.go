package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/maisonrony/shop_backend/internal/service/analytics"
)

// AnalyticsHandler exposes one admin read (dashboard) and two write
// endpoints that the public storefront calls directly, so the writes are
// deliberately unauthenticated.
type AnalyticsHandler struct {
	DB *gorm.DB
}

func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	dash, err := analytics.BuildDashboard(h.DB, time.Now())
	if err != nil {
		return internalError(c, "Erreur lors du calcul des statistiques.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"chartData": dash.ChartData,
		"stats":     dash.Stats,
	})
}

func (h *AnalyticsHandler) RecordVisit(c echo.Context) error {
	if err := analytics.RecordVisit(h.DB, time.Now()); err != nil {
		return internalError(c, "Erreur lors de l'enregistrement.", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AnalyticsHandler) RecordOrder(c echo.Context) error {
	var req struct {
		ProduitID    uint   `json:"produitId"`
		ProduitNom   string `json:"produitNom"`
		CategorieID  uint   `json:"categorieId"`
		CategorieNom string `json:"categorieNom"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}

	order := analytics.Order{
		ProduitID:    req.ProduitID,
		ProduitNom:   req.ProduitNom,
		CategorieID:  req.CategorieID,
		CategorieNom: req.CategorieNom,
	}
	if err := analytics.RecordOrder(h.DB, time.Now(), order); err != nil {
		return internalError(c, "Erreur lors de l'enregistrement.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
