package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/maisonrony/shop_backend/internal/models"
	"github.com/maisonrony/shop_backend/internal/mykafka"
)

const (
	reviewListLimit = 50
	reviewCooldown  = 60 * time.Second
)

type ReviewHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *ReviewHandler) List(c echo.Context) error {
	var reviews []models.Review
	if err := h.DB.Where("status = ?", models.ReviewApproved).
		Order("created_at DESC").
		Limit(reviewListLimit).
		Find(&reviews).Error; err != nil {
		return internalError(c, "Erreur lors de la récupération des avis", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(reviews),
		"reviews": reviews,
	})
}

func (h *ReviewHandler) Create(c echo.Context) error {
	var req struct {
		VisitorID string `json:"visitorId"`
		Nom       string `json:"nom"`
		Prenom    string `json:"prenom"`
		Photo     string `json:"photo"`
		Message   string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}

	if req.VisitorID == "" || req.Nom == "" || req.Prenom == "" || req.Message == "" {
		return respondError(c, http.StatusBadRequest, "Tous les champs obligatoires doivent être remplis")
	}
	if utf8.RuneCountInString(req.Message) > 1000 {
		return respondError(c, http.StatusBadRequest, "Le message ne doit pas dépasser 1000 caractères")
	}

	// One review per visitor per rolling minute. The check-then-create
	// pair is not transactional; a benign race is accepted.
	var recent models.Review
	err := h.DB.Where("visitor_id = ? AND created_at >= ?", req.VisitorID, time.Now().Add(-reviewCooldown)).
		First(&recent).Error
	if err == nil {
		return respondError(c, http.StatusTooManyRequests, "Veuillez attendre avant de poster un nouvel avis")
	}
	if err != gorm.ErrRecordNotFound {
		return internalError(c, "Erreur lors de la création de l'avis", err)
	}

	review := models.Review{
		VisitorID: req.VisitorID,
		Nom:       req.Nom,
		Prenom:    req.Prenom,
		Photo:     req.Photo,
		Message:   req.Message,
		Status:    models.ReviewApproved,
		LikedBy:   []string{},
	}
	if err := h.DB.Create(&review).Error; err != nil {
		return internalError(c, "Erreur lors de la création de l'avis", err)
	}

	publish(c, h.Producer, "review_events", fmt.Sprint(review.ID), map[string]interface{}{
		"type":     "review_created",
		"reviewId": review.ID,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Avis créé avec succès",
		"review":  review,
	})
}

// findOwned loads a review and enforces the visitor-id capability. Any
// holder of the stored id string may act as the author.
func (h *ReviewHandler) findOwned(c echo.Context, visitorID string) (*models.Review, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var review models.Review
	if err := h.DB.First(&review, id).Error; err != nil {
		return nil, respondError(c, http.StatusNotFound, "Avis introuvable")
	}

	if review.VisitorID != visitorID {
		return nil, respondError(c, http.StatusForbidden, "Vous n'êtes pas autorisé à modifier cet avis")
	}

	return &review, nil
}

func (h *ReviewHandler) Update(c echo.Context) error {
	var req struct {
		VisitorID string `json:"visitorId"`
		Message   string `json:"message"`
		Photo     string `json:"photo"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}

	review, errResp := h.findOwned(c, req.VisitorID)
	if review == nil {
		return errResp
	}

	if req.Message != "" {
		if utf8.RuneCountInString(req.Message) > 1000 {
			return respondError(c, http.StatusBadRequest, "Le message ne doit pas dépasser 1000 caractères")
		}
		review.Message = req.Message
	}
	if req.Photo != "" {
		review.Photo = req.Photo
	}

	if err := h.DB.Save(review).Error; err != nil {
		return internalError(c, "Erreur lors de la modification de l'avis", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Avis modifié avec succès",
		"review":  review,
	})
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	var req struct {
		VisitorID string `json:"visitorId"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Requête invalide.")
	}

	review, errResp := h.findOwned(c, req.VisitorID)
	if review == nil {
		return errResp
	}

	if err := h.DB.Delete(review).Error; err != nil {
		return internalError(c, "Erreur lors de la suppression de l'avis", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Avis supprimé avec succès",
	})
}

func (h *ReviewHandler) ToggleLike(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	var req struct {
		VisitorID string `json:"visitorId"`
	}
	if err := c.Bind(&req); err != nil || req.VisitorID == "" {
		return respondError(c, http.StatusBadRequest, "visitorId requis")
	}

	var review models.Review
	if err := h.DB.First(&review, id).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Avis introuvable")
	}

	liked := review.ToggleLike(req.VisitorID)
	if err := h.DB.Save(&review).Error; err != nil {
		return internalError(c, "Erreur lors du like", err)
	}

	msg := "Like retiré"
	if liked {
		msg = "Avis liké"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": msg,
		"liked":   liked,
		"review":  review,
	})
}
