package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/afdei/federation-cms/internal/auth"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type setupResponse struct {
	Message string        `json:"message"`
	User    *auth.Profile `json:"user,omitempty"`
}

func (api *API) registerAuthRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "auth")
	mux.HandleFunc("POST "+root+"/login", api.handleLogin)
	mux.HandleFunc("POST "+root+"/setup", api.handleSetup)
	mux.HandleFunc("GET "+root+"/me", api.requireAuth(api.handleMe))
	mux.HandleFunc("POST "+root+"/logout", api.requireAuth(api.handleLogout))
}

func (api *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if api.auth == nil {
		writeUnavailable(w)
		return
	}
	var payload loginPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	session, err := api.auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (api *API) handleSetup(w http.ResponseWriter, r *http.Request) {
	if api.auth == nil {
		writeUnavailable(w)
		return
	}
	profile, err := api.auth.Setup(r.Context())
	if errors.Is(err, auth.ErrAdminExists) {
		writeJSON(w, http.StatusOK, setupResponse{Message: "Admin user already exists"})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, setupResponse{Message: "Admin user created successfully", User: profile})
}

func (api *API) handleMe(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	profile, err := api.auth.Me(r.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

// handleLogout only acknowledges the call. Tokens are dropped client side.
func (api *API) handleLogout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}
