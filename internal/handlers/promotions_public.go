package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/maisonrony/shop_backend/internal/models"
)

type PublicPromotionHandler struct {
	DB *gorm.DB
}

// windowed filters on the persisted flag and both date bounds inside the
// query itself, so concurrent reads all judge "active" against the same
// instant instead of filtering in memory.
func (h *PublicPromotionHandler) windowed(now time.Time) *gorm.DB {
	return h.DB.Where("actif = ? AND date_debut <= ? AND date_fin >= ?", true, now, now)
}

func (h *PublicPromotionHandler) Active(c echo.Context) error {
	now := time.Now()

	var promotions []models.Promotion
	if err := h.windowed(now).
		Preload("Categorie").
		Order("created_at DESC").
		Find(&promotions).Error; err != nil {
		return internalError(c, "Erreur lors de la récupération des promotions.", err)
	}

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

func (h *PublicPromotionHandler) Tombola(c echo.Context) error {
	now := time.Now()

	var promotions []models.Promotion
	if err := h.windowed(now).
		Where("type = ?", models.PromoTombola).
		Order("created_at DESC").
		Find(&promotions).Error; err != nil {
		return internalError(c, "Erreur lors de la récupération.", err)
	}

	out := make([]echo.Map, len(promotions))
	for i := range promotions {
		p := &promotions[i]
		out[i] = echo.Map{
			"id":             p.ID,
			"nom":            p.Nom,
			"dateDebut":      p.DateDebut,
			"dateFin":        p.DateFin,
			"gains":          p.Gains,
			"dureeAffichage": p.DureeAffichage,
			"tempsRestant":   p.TempsRestant(now),
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"count":      len(out),
		"promotions": out,
	})
}

// ByCategory returns the single running stock-limite promotion for a
// category, or a null payload when none is live. No promotion is not an
// error for the storefront.
func (h *PublicPromotionHandler) ByCategory(c echo.Context) error {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	now := time.Now()

	var promo models.Promotion
	err = h.windowed(now).
		Where("type = ? AND categorie_id = ?", models.PromoStockLimite, categoryID).
		First(&promo).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusOK, echo.Map{
				"success":   true,
				"promotion": nil,
			})
		}
		return internalError(c, "Erreur lors de la récupération.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"promotion": echo.Map{
			"id":           promo.ID,
			"type":         promo.Type,
			"nom":          promo.Nom,
			"dateDebut":    promo.DateDebut,
			"dateFin":      promo.DateFin,
			"tempsRestant": promo.TempsRestant(now),
		},
	})
}
