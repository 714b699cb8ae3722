// Package handler contains the HTTP layer: decode the request, call the
// service, write the response. No business rules live here.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/jobtracker/internal/service"
)

// AuthHandler serves the two public routes: registration and login.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// registerRequest / loginRequest are the typed request bodies. Decoding into
// explicit structs (rather than poking at a map) means the service layer
// only ever sees structured, named inputs.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the success payload for both register and login:
// {"user":{"name":"..."},"token":"..."}. Only the display name goes out —
// never the id, email, or anything derived from the password.
type authResponse struct {
	User  authUser `json:"user"`
	Token string   `json:"token"`
}

type authUser struct {
	Name string `json:"name"`
}

// HandleRegister creates an account.
//
// HTTP: POST /register
// Body: {"name":"Alice Smith","email":"a@b.com","password":"secret1"}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	result, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		User:  authUser{Name: result.User.Name},
		Token: result.Token,
	})
}

// HandleLogin checks credentials and returns a fresh token.
//
// HTTP: POST /login
// Body: {"email":"a@b.com","password":"secret1"}
//
// Every failure — unknown email, wrong password — comes back as the same
// 401 with the same message. The service guarantees that; this handler just
// passes it through.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		User:  authUser{Name: result.User.Name},
		Token: result.Token,
	})
}
