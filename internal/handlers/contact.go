package handlers

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maisonrony/shop_backend/internal/logging"
	"github.com/maisonrony/shop_backend/internal/mail"
	"github.com/maisonrony/shop_backend/internal/mykafka"
)

// ContactHandler forwards storefront contact submissions by email. Two
// messages go out per submission: a notification to the shop inbox and a
// confirmation back to the visitor.
type ContactHandler struct {
	Mail         *mail.Client
	ContactEmail string
	Producer     *mykafka.Producer
}

type contactRequest struct {
	Nom     string `json:"nom"`
	Email   string `json:"email"`
	Sujet   string `json:"sujet"`
	Message string `json:"message"`
}

func (h *ContactHandler) Send(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}

	req.Nom = strings.TrimSpace(req.Nom)
	req.Email = strings.TrimSpace(req.Email)
	req.Sujet = strings.TrimSpace(req.Sujet)
	req.Message = strings.TrimSpace(req.Message)

	if req.Nom == "" || req.Email == "" || req.Sujet == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Tous les champs sont requis"})
	}
	if !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Adresse email invalide"})
	}

	ctx := c.Request().Context()
	log := logging.FromContext(ctx)

	notifID, err := h.Mail.Send(ctx, h.ContactEmail,
		fmt.Sprintf("Nouveau message de contact: %s", req.Sujet),
		notificationHTML(req))
	if err != nil {
		log.Error("contact notification email failed", "error", err)
		return respondError(c, http.StatusInternalServerError, "Erreur lors de l'envoi du message")
	}

	confirmID, err := h.Mail.Send(ctx, req.Email,
		"Confirmation de réception de votre message",
		confirmationHTML(req))
	if err != nil {
		log.Error("contact confirmation email failed", "error", err)
		return respondError(c, http.StatusInternalServerError, "Erreur lors de l'envoi du message")
	}

	publish(c, h.Producer, "contact_events", req.Email, echo.Map{
		"type":           "contact_message_sent",
		"email":          req.Email,
		"sujet":          req.Sujet,
		"notificationId": notifID,
		"confirmationId": confirmID,
		"at":             time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Votre message a été envoyé avec succès",
	})
}

func notificationHTML(req contactRequest) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px;">
  <h2 style="color: #8B4513;">Nouveau message de contact</h2>
  <p><strong>Nom :</strong> %s</p>
  <p><strong>Email :</strong> %s</p>
  <p><strong>Sujet :</strong> %s</p>
  <hr style="border: none; border-top: 1px solid #ddd;">
  <p style="white-space: pre-line;">%s</p>
</div>`,
		html.EscapeString(req.Nom),
		html.EscapeString(req.Email),
		html.EscapeString(req.Sujet),
		html.EscapeString(req.Message))
}

func confirmationHTML(req contactRequest) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px;">
  <h2 style="color: #8B4513;">Merci pour votre message</h2>
  <p>Bonjour %s,</p>
  <p>Nous avons bien reçu votre message concernant « %s ».</p>
  <p>Notre équipe vous répondra dans les plus brefs délais.</p>
  <p style="margin-top: 24px;">À très bientôt,<br>L'équipe Maison Rony</p>
</div>`,
		html.EscapeString(req.Nom),
		html.EscapeString(req.Sujet))
}
