package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/maisonrony/shop_backend/internal/models"
	"github.com/maisonrony/shop_backend/internal/mykafka"
)

type PromotionAdminHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

// promotionJSON shapes a promotion for the wire, attaching the populated
// category and the derived window/countdown fields.
func promotionJSON(p *models.Promotion, now time.Time) echo.Map {
	out := echo.Map{
		"id":             p.ID,
		"type":           p.Type,
		"nom":            p.Nom,
		"actif":          p.Actif,
		"dateDebut":      p.DateDebut,
		"dateFin":        p.DateFin,
		"gains":          p.Gains,
		"dureeAffichage": p.DureeAffichage,
		"estActive":      p.EstActive(now),
		"tempsRestant":   p.TempsRestant(now),
		"createdAt":      p.CreatedAt,
	}
	if p.Categorie != nil {
		out["categorie"] = echo.Map{
			"id":   p.Categorie.ID,
			"nom":  p.Categorie.Nom,
			"slug": p.Categorie.Slug,
		}
	}
	return out
}

func (h *PromotionAdminHandler) List(c echo.Context) error {
	var promotions []models.Promotion
	if err := h.DB.Preload("Categorie").Order("created_at DESC").Find(&promotions).Error; err != nil {
		return internalError(c, "Erreur lors de la récupération des promotions.", err)
	}

	now := time.Now()
	out := make([]echo.Map, len(promotions))
	for i := range promotions {
		out[i] = promotionJSON(&promotions[i], now)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"count":      len(out),
		"promotions": out,
	})
}

func (h *PromotionAdminHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var promo models.Promotion
	if err := h.DB.Preload("Categorie").First(&promo, id).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Promotion introuvable.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"promotion": promotionJSON(&promo, time.Now()),
	})
}

func (h *PromotionAdminHandler) Create(c echo.Context) error {
	var req struct {
		Type           string    `json:"type"`
		Nom            string    `json:"nom"`
		DateDebut      time.Time `json:"dateDebut"`
		DateFin        time.Time `json:"dateFin"`
		Categorie      *uint     `json:"categorieId"`
		Gains          []string  `json:"gains"`
		DureeAffichage int       `json:"dureeAffichage"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}

	if req.Type == "" || req.Nom == "" || req.DateDebut.IsZero() || req.DateFin.IsZero() {
		return respondError(c, http.StatusBadRequest, "Champs requis manquants.")
	}
	if req.Type != models.PromoStockLimite && req.Type != models.PromoTombola {
		return respondError(c, http.StatusBadRequest, "Type de promotion invalide.")
	}

	if req.Type == models.PromoStockLimite && req.Categorie == nil {
		return respondError(c, http.StatusBadRequest, "La catégorie est requise pour une promo Stock Limité.")
	}
	if req.Type == models.PromoTombola && len(req.Gains) == 0 {
		return respondError(c, http.StatusBadRequest, "Au moins un gain est requis pour une promo Tombola.")
	}

	promo := models.Promotion{
		Type:           req.Type,
		Nom:            req.Nom,
		Actif:          true,
		DateDebut:      req.DateDebut,
		DateFin:        req.DateFin,
		DureeAffichage: req.DureeAffichage,
	}
	if promo.DureeAffichage == 0 {
		promo.DureeAffichage = 10
	}

	// A promotion only ever carries the fields of its own type.
	switch req.Type {
	case models.PromoStockLimite:
		var cat models.Category
		if err := h.DB.First(&cat, *req.Categorie).Error; err != nil {
			return respondError(c, http.StatusNotFound, "Catégorie introuvable.")
		}
		promo.CategorieID = req.Categorie
		promo.Categorie = &cat
	case models.PromoTombola:
		promo.Gains = req.Gains
	}

	if err := h.DB.Omit("Categorie").Create(&promo).Error; err != nil {
		return internalError(c, "Erreur lors de la création.", err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(promo.ID), map[string]interface{}{
		"type":        "promotion_created",
		"promotionId": promo.ID,
		"promoType":   promo.Type,
		"nom":         promo.Nom,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success":   true,
		"message":   "Promotion créée avec succès",
		"promotion": promotionJSON(&promo, time.Now()),
	})
}

func (h *PromotionAdminHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var req struct {
		Nom            *string    `json:"nom"`
		DateDebut      *time.Time `json:"dateDebut"`
		DateFin        *time.Time `json:"dateFin"`
		Actif          *bool      `json:"actif"`
		Gains          []string   `json:"gains"`
		DureeAffichage *int       `json:"dureeAffichage"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}

	var promo models.Promotion
	if err := h.DB.Preload("Categorie").First(&promo, id).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Promotion introuvable.")
	}

	if req.Nom != nil {
		promo.Nom = *req.Nom
	}
	if req.DateDebut != nil {
		promo.DateDebut = *req.DateDebut
	}
	if req.DateFin != nil {
		promo.DateFin = *req.DateFin
	}
	if req.Actif != nil {
		promo.Actif = *req.Actif
	}
	// Gains apply only to tombola promotions; for stock-limite they are
	// silently ignored rather than rejected.
	if req.Gains != nil && promo.Type == models.PromoTombola {
		promo.Gains = req.Gains
	}
	if req.DureeAffichage != nil {
		promo.DureeAffichage = *req.DureeAffichage
	}

	if err := h.DB.Omit("Categorie").Save(&promo).Error; err != nil {
		return internalError(c, "Erreur lors de la modification.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Promotion modifiée avec succès",
		"promotion": promotionJSON(&promo, time.Now()),
	})
}

func (h *PromotionAdminHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var promo models.Promotion
	if err := h.DB.First(&promo, id).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Promotion introuvable.")
	}

	if err := h.DB.Delete(&promo).Error; err != nil {
		return internalError(c, "Erreur lors de la suppression.", err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(promo.ID), map[string]interface{}{
		"type":        "promotion_deleted",
		"promotionId": promo.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Promotion supprimée avec succès",
	})
}

func (h *PromotionAdminHandler) Toggle(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var promo models.Promotion
	if err := h.DB.Preload("Categorie").First(&promo, id).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Promotion introuvable.")
	}

	promo.Actif = !promo.Actif
	if err := h.DB.Omit("Categorie").Save(&promo).Error; err != nil {
		return internalError(c, "Erreur lors du changement de statut.", err)
	}

	msg := "Promotion désactivée"
	if promo.Actif {
		msg = "Promotion activée"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   msg,
		"promotion": promotionJSON(&promo, time.Now()),
	})
}
