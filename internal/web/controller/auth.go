package controller

import (
	"net/http"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/auth"
)

// Auth provides auth handlers
type Auth struct {
	AuthService *auth.Service
}

// Register registers the auth routes
func (a *Auth) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /login", a.login)
	mux.HandleFunc("POST /logout", a.logout)
}

func (a *Auth) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	user, err := a.AuthService.Login(w, r, in.Username, in.Password)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (a *Auth) logout(w http.ResponseWriter, r *http.Request) {
	a.AuthService.Logout(w, r)
	respondJSON(w, http.StatusNoContent, nil)
}
