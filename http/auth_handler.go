package http

import (
	"net/http"

	"income-tax/domain"
	"income-tax/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type authResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}
	if err := h.service.SignUp(r.Context(), creds); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, authResponse{Username: creds.Name(), Message: "account created"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}
	if err := h.service.Login(r.Context(), creds); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, authResponse{Username: creds.Name(), Message: "login successful"})
}
