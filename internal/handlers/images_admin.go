package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/maisonrony/shop_backend/internal/logging"
	"github.com/maisonrony/shop_backend/internal/models"
	"github.com/maisonrony/shop_backend/internal/mykafka"
	"github.com/maisonrony/shop_backend/internal/service/search"
)

type ImageAdminHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

// syncIndex mirrors the catalog write into the search index, best effort.
func (h *ImageAdminHandler) syncIndex(c echo.Context, img *models.Image, deleted bool) {
	if h.ES == nil {
		return
	}
	var err error
	if deleted {
		err = search.DeleteImage(c.Request().Context(), h.ES, h.Index, img.ID)
	} else {
		err = search.IndexImage(c.Request().Context(), h.ES, h.Index, img)
	}
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("search index sync failed", "image_id", img.ID, "error", err)
	}
}

func (h *ImageAdminHandler) ListByCategory(c echo.Context) error {
	categoryID, err := strconv.Atoi(c.Param("categoryId"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var cat models.Category
	if err := h.DB.First(&cat, categoryID).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Catégorie introuvable.")
	}

	var images []models.Image
	if err := h.DB.Where("categorie_id = ?", cat.ID).
		Order("ordre ASC, created_at DESC").
		Find(&images).Error; err != nil {
		return internalError(c, "Erreur lors de la récupération des images.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(images),
		"images":  images,
		"category": echo.Map{
			"id":          cat.ID,
			"nom":         cat.Nom,
			"slug":        cat.Slug,
			"description": cat.Description,
		},
	})
}

func (h *ImageAdminHandler) Create(c echo.Context) error {
	categoryID, err := strconv.Atoi(c.Param("categoryId"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var req struct {
		URL         string             `json:"url"`
		PublicID    string             `json:"publicId"`
		Nom         string             `json:"nom"`
		Prix        float64            `json:"prix"`
		Devise      string             `json:"devise"`
		Description string             `json:"description"`
		EnStock     *bool              `json:"enStock"`
		Quantite    *int               `json:"quantite"`
		Dimensions  *models.Dimensions `json:"dimensions"`
		Materiau    string             `json:"materiau"`
		Ordre       int                `json:"ordre"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}

	if req.URL == "" || req.PublicID == "" {
		return respondError(c, http.StatusBadRequest, "URL et publicId sont requis.")
	}

	var cat models.Category
	if err := h.DB.First(&cat, categoryID).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Catégorie introuvable.")
	}

	img := models.Image{
		URL:         req.URL,
		PublicID:    req.PublicID,
		CategorieID: cat.ID,
		Nom:         req.Nom,
		Prix:        req.Prix,
		Devise:      req.Devise,
		Description: req.Description,
		EnStock:     true,
		Quantite:    1,
		Materiau:    req.Materiau,
		Ordre:       req.Ordre,
		Actif:       true,
	}
	if img.Devise == "" {
		img.Devise = "FCFA"
	}
	if req.EnStock != nil {
		img.EnStock = *req.EnStock
	}
	if req.Quantite != nil {
		img.Quantite = *req.Quantite
	}
	if req.Dimensions != nil {
		img.Dimensions = *req.Dimensions
	}

	if err := h.DB.Create(&img).Error; err != nil {
		return internalError(c, "Erreur lors de l'ajout de l'image.", err)
	}

	h.syncIndex(c, &img, false)
	publish(c, h.Producer, "catalog_events", fmt.Sprint(img.ID), map[string]interface{}{
		"type":     "image_created",
		"imageId":  img.ID,
		"nom":      img.Nom,
		"category": cat.Nom,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Image ajoutée avec succès",
		"image":   img,
	})
}

func (h *ImageAdminHandler) Update(c echo.Context) error {
	imageID, err := strconv.Atoi(c.Param("imageId"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	// Explicit allow-list of mutable fields, nothing else gets merged in.
	var req struct {
		Nom         *string            `json:"nom"`
		Prix        *float64           `json:"prix"`
		Devise      *string            `json:"devise"`
		Description *string            `json:"description"`
		EnStock     *bool              `json:"enStock"`
		Quantite    *int               `json:"quantite"`
		Dimensions  *models.Dimensions `json:"dimensions"`
		Materiau    *string            `json:"materiau"`
		Ordre       *int               `json:"ordre"`
		Actif       *bool              `json:"actif"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}

	var img models.Image
	if err := h.DB.First(&img, imageID).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Image introuvable.")
	}

	if req.Nom != nil {
		img.Nom = *req.Nom
	}
	if req.Prix != nil {
		img.Prix = *req.Prix
	}
	if req.Devise != nil {
		img.Devise = *req.Devise
	}
	if req.Description != nil {
		img.Description = *req.Description
	}
	if req.EnStock != nil {
		img.EnStock = *req.EnStock
	}
	if req.Quantite != nil {
		img.Quantite = *req.Quantite
	}
	if req.Dimensions != nil {
		img.Dimensions = *req.Dimensions
	}
	if req.Materiau != nil {
		img.Materiau = *req.Materiau
	}
	if req.Ordre != nil {
		img.Ordre = *req.Ordre
	}
	if req.Actif != nil {
		img.Actif = *req.Actif
	}

	if err := h.DB.Save(&img).Error; err != nil {
		return internalError(c, "Erreur lors de la modification.", err)
	}

	h.syncIndex(c, &img, false)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Image modifiée avec succès",
		"image":   img,
	})
}

func (h *ImageAdminHandler) Delete(c echo.Context) error {
	imageID, err := strconv.Atoi(c.Param("imageId"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var img models.Image
	if err := h.DB.First(&img, imageID).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Image introuvable.")
	}

	if err := h.DB.Delete(&img).Error; err != nil {
		return internalError(c, "Erreur lors de la suppression.", err)
	}

	h.syncIndex(c, &img, true)
	publish(c, h.Producer, "catalog_events", fmt.Sprint(img.ID), map[string]interface{}{
		"type":    "image_deleted",
		"imageId": img.ID,
	})

	// The caller needs publicId to purge the asset from its CDN side.
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Image supprimée avec succès",
		"publicId": img.PublicID,
	})
}

// Reorder rewrites display positions from a full ordered id list: the
// index in the array becomes the image's ordre.
func (h *ImageAdminHandler) Reorder(c echo.Context) error {
	categoryID, err := strconv.Atoi(c.Param("categoryId"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var req struct {
		ImageIDs []uint `json:"imageIds"`
	}
	if err := c.Bind(&req); err != nil || req.ImageIDs == nil {
		return respondError(c, http.StatusBadRequest, "Format invalide. Un tableau d'IDs est requis.")
	}

	for index, imageID := range req.ImageIDs {
		if err := h.DB.Model(&models.Image{}).
			Where("id = ? AND categorie_id = ?", imageID, categoryID).
			Update("ordre", index).Error; err != nil {
			return internalError(c, "Erreur lors de la réorganisation.", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Ordre des images mis à jour",
	})
}
