package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/maisonrony/shop_backend/internal/models"
)

// publicImagesPerCategory caps the landing-page payload; the per-slug
// route returns everything.
const publicImagesPerCategory = 20

type PublicCatalogHandler struct {
	DB *gorm.DB
}

// imageJSON includes the derived display fields alongside the stored ones.
func imageJSON(img *models.Image) echo.Map {
	return echo.Map{
		"id":                  img.ID,
		"url":                 img.URL,
		"nom":                 img.Nom,
		"prix":                img.Prix,
		"prixFormate":         img.PrixFormate(),
		"devise":              img.Devise,
		"description":         img.Description,
		"enStock":             img.EnStock,
		"quantite":            img.Quantite,
		"dimensions":          img.Dimensions,
		"dimensionsFormatees": img.Dimensions.Formatees(),
		"materiau":            img.Materiau,
		"ordre":               img.Ordre,
	}
}

func (h *PublicCatalogHandler) activeImages(categoryID uint, limit int) ([]models.Image, error) {
	q := h.DB.Where("categorie_id = ? AND actif = ?", categoryID, true).
		Order("ordre ASC, created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var images []models.Image
	err := q.Find(&images).Error
	return images, err
}

// List returns active categories with their active images, dropping
// categories that have nothing to show.
func (h *PublicCatalogHandler) List(c echo.Context) error {
	var categories []models.Category
	if err := h.DB.Where("actif = ?", true).
		Order("ordre ASC, nom ASC").
		Find(&categories).Error; err != nil {
		return internalError(c, "Erreur lors de la récupération des catégories.", err)
	}

	out := make([]echo.Map, 0, len(categories))
	for i := range categories {
		cat := &categories[i]
		images, err := h.activeImages(cat.ID, publicImagesPerCategory)
		if err != nil {
			return internalError(c, "Erreur lors de la récupération des catégories.", err)
		}
		if len(images) == 0 {
			continue
		}

		imgs := make([]echo.Map, len(images))
		for j := range images {
			imgs[j] = imageJSON(&images[j])
		}
		out = append(out, echo.Map{
			"id":           cat.ID,
			"nom":          cat.Nom,
			"slug":         cat.Slug,
			"ordre":        cat.Ordre,
			"images":       imgs,
			"nombreImages": len(imgs),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"count":      len(out),
		"categories": out,
	})
}

func (h *PublicCatalogHandler) GetBySlug(c echo.Context) error {
	var cat models.Category
	if err := h.DB.Where("slug = ? AND actif = ?", c.Param("slug"), true).First(&cat).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Catégorie introuvable.")
	}

	images, err := h.activeImages(cat.ID, 0)
	if err != nil {
		return internalError(c, "Erreur lors de la récupération.", err)
	}

	imgs := make([]echo.Map, len(images))
	for j := range images {
		imgs[j] = imageJSON(&images[j])
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"category": echo.Map{
			"id":           cat.ID,
			"nom":          cat.Nom,
			"slug":         cat.Slug,
			"images":       imgs,
			"nombreImages": len(imgs),
		},
	})
}
