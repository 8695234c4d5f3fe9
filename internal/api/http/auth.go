package http

import (
	"net/http"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/cedarhq/taskboard/internal/api/service"
	"github.com/cedarhq/taskboard/pkg/httpx"
	"github.com/cedarhq/taskboard/pkg/validate"
)

// AuthHandler handles the unauthenticated credential endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// tokenResponse is the data payload for both login and register.
type tokenResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// HandleLogin handles POST /auth/login
//
//	@Summary		Login
//	@Description	Verifies email and password and issues a signed bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	httpx.Envelope	"user and token"
//	@Failure		401		{object}	httpx.Envelope	"invalid credentials"
//	@Failure		422		{object}	httpx.Envelope	"field errors"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	v.Required(req.Email, "email")
	v.Required(req.Password, "password")
	if !v.Valid() {
		writeServiceError(w, r, v.Err())
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, "Login successful", tokenResponse{User: user, Token: token})
}

// HandleRegister handles POST /auth/register
//
//	@Summary		Register
//	@Description	Creates a new user account and issues a token immediately.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerRequest	true	"New account"
//	@Success		200		{object}	httpx.Envelope	"user and token"
//	@Failure		422		{object}	httpx.Envelope	"field errors, including duplicate email"
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	v.Required(req.Name, "name")
	v.Email(req.Email)
	v.Password(req.Password)
	v.OneOf(req.Role, "role", string(domain.RoleAdmin), string(domain.RoleUser))
	if !v.Valid() {
		writeServiceError(w, r, v.Err())
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, "Registration successful", tokenResponse{User: user, Token: token})
}
