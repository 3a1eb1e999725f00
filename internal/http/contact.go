package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/afdei/federation-cms/internal/contact"
)

type contactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (api *API) registerContactRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "contact")
	mux.HandleFunc("POST "+root, api.handleContactSubmit)
	mux.HandleFunc("GET "+root, api.requireAuth(api.handleContactList))
	mux.HandleFunc("GET "+root+"/{id}", api.requireAuth(api.handleContactGet))
	mux.HandleFunc("DELETE "+root+"/{id}", api.requireAuth(api.handleContactDelete))
}

func (api *API) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if api.contact == nil {
		writeUnavailable(w)
		return
	}
	var payload contactPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	submission, err := api.contact.Submit(r.Context(), contact.SubmitInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Subject: payload.Subject,
		Message: payload.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{
		Message: "Message sent successfully",
		ID:      submission.ID.String(),
	})
}

func (api *API) handleContactList(w http.ResponseWriter, r *http.Request) {
	if api.contact == nil {
		writeUnavailable(w)
		return
	}
	list, err := api.contact.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleContactGet(w http.ResponseWriter, r *http.Request) {
	if api.contact == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	submission, err := api.contact.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submission)
}

func (api *API) handleContactDelete(w http.ResponseWriter, r *http.Request) {
	if api.contact == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := api.contact.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Submission deleted successfully"})
}
