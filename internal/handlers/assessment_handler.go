package handlers

import (
	"bytes"
	"errors"
	"html/template"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Field messages for store failures shown next to the email input.
const (
	formMsgNotConfigured = "Database not configured. Please contact support."
	formMsgPermission    = "Database permission error. Please contact support."
	formMsgCheckFailed   = "Failed to check registration. Please try again."
	formMsgSaveFailed    = "Failed to save registration. Please try again."
)

var assessmentPage = template.Must(template.New("free-assessment").Parse(`<!DOCTYPE html>
<html lang="en"><head><title>Free Assessment Registration</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="robots" content="noindex">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:560px;margin:0 auto;padding:20px;color:#333}label{display:block;margin-top:16px;font-weight:600}input{width:100%;padding:8px;margin-top:4px;box-sizing:border-box}.error{color:#c0392b;font-size:14px}.success{background:#e8f8ef;padding:12px;border-radius:6px}button{margin-top:24px;padding:10px 20px}</style>
</head><body>
<h1>Register for a Free Assessment</h1>
{{if .Success}}<p class="success">Thank you for registering! We will contact you shortly with your assessment details.</p>{{end}}
<form method="POST" action="/free-assessment" novalidate>
<label for="name">Full Name</label>
<input id="name" name="name" type="text" value="{{.Input.Name}}">
{{with index .Errors "name"}}<p class="error">{{.}}</p>{{end}}
<label for="email">Email Address</label>
<input id="email" name="email" type="email" value="{{.Input.Email}}">
{{with index .Errors "email"}}<p class="error">{{.}}</p>{{end}}
<label for="mobile">Mobile Number</label>
<input id="mobile" name="mobile" type="tel" value="{{.Input.Mobile}}">
{{with index .Errors "mobile"}}<p class="error">{{.}}</p>{{end}}
<button type="submit">Register</button>
</form>
</body></html>`))

type assessmentView struct {
	Input   services.RegistrationInput
	Errors  map[string]string
	Success bool
}

// AssessmentHandler serves the server-rendered registration form. It shares
// validation and persistence with the JSON API.
type AssessmentHandler struct {
	service *services.RegistrationService
}

func NewAssessmentHandler(service *services.RegistrationService) *AssessmentHandler {
	return &AssessmentHandler{service: service}
}

// Form handles GET /free-assessment.
func (h *AssessmentHandler) Form(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, assessmentView{Errors: map[string]string{}})
}

// Submit handles POST /free-assessment.
func (h *AssessmentHandler) Submit(c *fiber.Ctx) error {
	var input services.RegistrationInput
	if err := c.BodyParser(&input); err != nil {
		return h.render(c, fiber.StatusBadRequest, assessmentView{
			Errors: map[string]string{"email": "Something went wrong. Please try again later."},
		})
	}

	if _, err := h.service.Submit(c.UserContext(), input); err != nil {
		status, fieldErrors := formErrors(err)
		if status >= fiber.StatusInternalServerError {
			captureException(c, err)
		}
		return h.render(c, status, assessmentView{Input: input, Errors: fieldErrors})
	}

	return h.render(c, fiber.StatusOK, assessmentView{Errors: map[string]string{}, Success: true})
}

// formErrors maps a registration failure to field-level messages.
func formErrors(err error) (int, map[string]string) {
	fields := make(map[string]string)

	var verrs services.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field] = fe.Message
		}
		return fiber.StatusBadRequest, fields
	}

	var storeErr *services.StoreError
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		fields["email"] = msgDuplicateEmail
		return fiber.StatusConflict, fields
	case errors.Is(err, services.ErrConfiguration):
		fields["email"] = formMsgNotConfigured
	case errors.Is(err, services.ErrPermission):
		fields["email"] = formMsgPermission
	case errors.As(err, &storeErr) && storeErr.Op == services.OpCheck:
		fields["email"] = formMsgCheckFailed
	default:
		fields["email"] = formMsgSaveFailed
	}
	return fiber.StatusInternalServerError, fields
}

func (h *AssessmentHandler) render(c *fiber.Ctx, status int, view assessmentView) error {
	var buf bytes.Buffer
	if err := assessmentPage.Execute(&buf, view); err != nil {
		return err
	}
	return c.Status(status).Type("html").Send(buf.Bytes())
}
