package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/afdei/federation-cms/internal/bilingual"
	"github.com/afdei/federation-cms/internal/sections"
)

type sectionPayload struct {
	Section  string                `json:"section"`
	Content  *bilingual.RawPayload `json:"content"`
	Images   []bilingual.Image     `json:"images"`
	IsActive *bool                 `json:"isActive"`
	Order    *int                  `json:"order"`
}

func (p sectionPayload) content() sections.Content {
	if p.Content == nil {
		return sections.Content{}
	}
	return sections.Content{En: rawHalf(p.Content.En), Ar: rawHalf(p.Content.Ar)}
}

func (api *API) registerSectionRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "content")
	mux.HandleFunc("GET "+root, api.handleSectionList)
	mux.HandleFunc("GET "+root+"/section/{section}", api.handleSectionGet)
	mux.HandleFunc("GET "+root+"/admin", api.requireAuth(api.handleSectionAdminList))
	mux.HandleFunc("POST "+root, api.requireAuth(api.handleSectionCreate))
	mux.HandleFunc("PUT "+root+"/section/{section}", api.requireAuth(api.handleSectionUpsert))
	mux.HandleFunc("PUT "+root+"/{id}", api.requireAuth(api.handleSectionUpdate))
	mux.HandleFunc("DELETE "+root+"/{id}", api.requireAuth(api.handleSectionDelete))
}

func (api *API) handleSectionList(w http.ResponseWriter, r *http.Request) {
	if api.sections == nil {
		writeUnavailable(w)
		return
	}
	list, err := api.sections.GetAllSections(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleSectionGet answers null for unknown sections so the site can fall
// back to its built-in copy.
func (api *API) handleSectionGet(w http.ResponseWriter, r *http.Request) {
	if api.sections == nil {
		writeUnavailable(w)
		return
	}
	view, err := api.sections.GetSection(r.Context(), r.PathValue("section"))
	if err != nil {
		if errors.Is(err, sections.ErrSectionNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (api *API) handleSectionAdminList(w http.ResponseWriter, r *http.Request) {
	if api.sections == nil {
		writeUnavailable(w)
		return
	}
	list, err := api.sections.ListSections(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleSectionCreate(w http.ResponseWriter, r *http.Request) {
	if api.sections == nil {
		writeUnavailable(w)
		return
	}
	var payload sectionPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	created, err := api.sections.CreateSection(r.Context(), sections.CreateInput{
		Section:  payload.Section,
		Content:  payload.content(),
		Images:   payload.Images,
		IsActive: payload.IsActive,
		Order:    payload.Order,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *API) handleSectionUpsert(w http.ResponseWriter, r *http.Request) {
	if api.sections == nil {
		writeUnavailable(w)
		return
	}
	var payload sectionPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	view, err := api.sections.UpsertSection(r.Context(), sections.UpsertInput{
		Section:  r.PathValue("section"),
		Content:  payload.content(),
		Images:   payload.Images,
		IsActive: payload.IsActive,
		Order:    payload.Order,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (api *API) handleSectionUpdate(w http.ResponseWriter, r *http.Request) {
	if api.sections == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	var payload sectionPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	view, err := api.sections.UpdateSection(r.Context(), id, sections.UpdateInput{
		Content:  payload.content(),
		Images:   payload.Images,
		IsActive: payload.IsActive,
		Order:    payload.Order,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (api *API) handleSectionDelete(w http.ResponseWriter, r *http.Request) {
	if api.sections == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := api.sections.DeleteSection(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Content deleted successfully"})
}
