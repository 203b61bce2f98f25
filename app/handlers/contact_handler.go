package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	zlog "github.com/rs/zerolog/log"
	"github.com/unrolled/render"

	"github.com/mechstore/go-mechstore/app/services"
)

type ContactHandler struct {
	render     *render.Render
	mailer     services.EmailSender
	adminEmail string
	validate   *validator.Validate
}

func NewContactHandler(rnd *render.Render, mailer services.EmailSender, adminEmail string, validate *validator.Validate) *ContactHandler {
	return &ContactHandler{render: rnd, mailer: mailer, adminEmail: adminEmail, validate: validate}
}

type contactForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Send forwards a contact-form submission to the admin inbox. Unlike order
// notifications this is synchronous: the caller wants to know the message
// went through.
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var form contactForm
	if !decodeJSON(h.render, w, r, &form) {
		return
	}
	if err := h.validate.Struct(&form); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			writeValidationError(h.render, w, errs)
			return
		}
		writeError(h.render, w, err)
		return
	}

	subject := "New contact form submission from " + form.Name
	body := services.ContactEmailHTML(form.Name, form.Email, form.Phone, form.Message)
	if err := h.mailer.SendHTMLEmail(h.adminEmail, subject, body); err != nil {
		zlog.Error().Err(err).Str("from", form.Email).Msg("contact email failed")
		_ = h.render.JSON(w, http.StatusInternalServerError, errorResponse{
			Detail: "failed to send email",
			Code:   "EMAIL_ERROR",
		})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "email sent successfully"})
}
