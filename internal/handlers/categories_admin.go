package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/maisonrony/shop_backend/internal/models"
	"github.com/maisonrony/shop_backend/internal/mykafka"
)

type CategoryAdminHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *CategoryAdminHandler) countImages(categoryID uint) (int64, error) {
	var n int64
	err := h.DB.Model(&models.Image{}).Where("categorie_id = ?", categoryID).Count(&n).Error
	return n, err
}

func (h *CategoryAdminHandler) List(c echo.Context) error {
	var categories []models.Category
	if err := h.DB.Order("ordre ASC, created_at DESC").Find(&categories).Error; err != nil {
		return internalError(c, "Erreur lors de la récupération des catégories.", err)
	}

	out := make([]echo.Map, len(categories))
	for i := range categories {
		cat := &categories[i]
		count, err := h.countImages(cat.ID)
		if err != nil {
			return internalError(c, "Erreur lors de la récupération des catégories.", err)
		}
		out[i] = echo.Map{
			"id":           cat.ID,
			"nom":          cat.Nom,
			"slug":         cat.Slug,
			"description":  cat.Description,
			"ordre":        cat.Ordre,
			"actif":        cat.Actif,
			"createdAt":    cat.CreatedAt,
			"updatedAt":    cat.UpdatedAt,
			"nombreImages": count,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"count":      len(out),
		"categories": out,
	})
}

func (h *CategoryAdminHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var cat models.Category
	if err := h.DB.First(&cat, id).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Catégorie introuvable.")
	}

	count, err := h.countImages(cat.ID)
	if err != nil {
		return internalError(c, "Erreur lors de la récupération.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"category": echo.Map{
			"id":           cat.ID,
			"nom":          cat.Nom,
			"slug":         cat.Slug,
			"description":  cat.Description,
			"ordre":        cat.Ordre,
			"actif":        cat.Actif,
			"createdAt":    cat.CreatedAt,
			"updatedAt":    cat.UpdatedAt,
			"nombreImages": count,
		},
	})
}

func (h *CategoryAdminHandler) Create(c echo.Context) error {
	var req struct {
		Nom   string `json:"nom"`
		Ordre int    `json:"ordre"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}

	nom := strings.TrimSpace(req.Nom)
	if nom == "" {
		return respondError(c, http.StatusBadRequest, "Le nom de la catégorie est requis.")
	}

	// Uniqueness is case-insensitive: "Perruques" and "perruques" collide.
	var existing models.Category
	if err := h.DB.Where("LOWER(nom) = LOWER(?)", nom).First(&existing).Error; err == nil {
		return respondError(c, http.StatusBadRequest, "Cette catégorie existe déjà.")
	}

	cat := models.Category{Nom: nom, Ordre: req.Ordre}
	if err := h.DB.Create(&cat).Error; err != nil {
		return internalError(c, "Erreur lors de la création de la catégorie.", err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(cat.ID), map[string]interface{}{
		"type":        "category_created",
		"categorieId": cat.ID,
		"nom":         cat.Nom,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success":  true,
		"message":  "Catégorie créée avec succès",
		"category": cat,
	})
}

func (h *CategoryAdminHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var req struct {
		Nom         *string `json:"nom"`
		Description *string `json:"description"`
		Ordre       *int    `json:"ordre"`
		Actif       *bool   `json:"actif"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}

	var cat models.Category
	if err := h.DB.First(&cat, id).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Catégorie introuvable.")
	}

	if req.Nom != nil && strings.TrimSpace(*req.Nom) != "" {
		cat.Nom = strings.TrimSpace(*req.Nom)
	}
	if req.Description != nil {
		cat.Description = strings.TrimSpace(*req.Description)
	}
	if req.Ordre != nil {
		cat.Ordre = *req.Ordre
	}
	if req.Actif != nil {
		cat.Actif = *req.Actif
	}

	if err := h.DB.Save(&cat).Error; err != nil {
		return internalError(c, "Erreur lors de la modification.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Catégorie modifiée avec succès",
		"category": cat,
	})
}

func (h *CategoryAdminHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var cat models.Category
	if err := h.DB.First(&cat, id).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Catégorie introuvable.")
	}

	count, err := h.countImages(cat.ID)
	if err != nil {
		return internalError(c, "Erreur lors de la suppression.", err)
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success":    false,
			"message":    fmt.Sprintf("Impossible de supprimer. Cette catégorie contient %d image(s).", count),
			"imageCount": count,
		})
	}

	if err := h.DB.Delete(&cat).Error; err != nil {
		return internalError(c, "Erreur lors de la suppression.", err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(cat.ID), map[string]interface{}{
		"type":        "category_deleted",
		"categorieId": cat.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Catégorie supprimée avec succès",
	})
}
