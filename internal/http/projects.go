package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/afdei/federation-cms/internal/bilingual"
	"github.com/afdei/federation-cms/internal/projects"
)

type projectPayload struct {
	Name        *bilingual.TextPatch `json:"name"`
	Description *bilingual.TextPatch `json:"description"`
	Objectives  *bilingual.List      `json:"objectives"`
	Benefits    *bilingual.List      `json:"benefits"`
	Images      []bilingual.Image    `json:"images"`
	IsFeatured  *bool                `json:"isFeatured"`
	IsActive    *bool                `json:"isActive"`
	Order       *int                 `json:"order"`
}

func listOrEmpty(list *bilingual.List) bilingual.List {
	if list == nil {
		return bilingual.List{}
	}
	return *list
}

func (api *API) registerProjectRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "projects")
	mux.HandleFunc("GET "+root, api.handleProjectList)
	mux.HandleFunc("GET "+root+"/{id}", api.handleProjectGet)
	mux.HandleFunc("POST "+root, api.requireAuth(api.handleProjectCreate))
	mux.HandleFunc("PUT "+root+"/{id}", api.requireAuth(api.handleProjectUpdate))
	mux.HandleFunc("DELETE "+root+"/{id}", api.requireAuth(api.handleProjectDelete))
}

func (api *API) handleProjectList(w http.ResponseWriter, r *http.Request) {
	if api.projects == nil {
		writeUnavailable(w)
		return
	}
	list, err := api.projects.List(r.Context(), projects.ListOptions{
		FeaturedOnly: parseBoolQuery(r.URL.Query().Get("featured"), false),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleProjectGet(w http.ResponseWriter, r *http.Request) {
	if api.projects == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	view, err := api.projects.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (api *API) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	if api.projects == nil {
		writeUnavailable(w)
		return
	}
	var payload projectPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	created, err := api.projects.Create(r.Context(), projects.CreateInput{
		Name:        payload.Name.Text(),
		Description: payload.Description.Text(),
		Objectives:  listOrEmpty(payload.Objectives),
		Benefits:    listOrEmpty(payload.Benefits),
		Images:      payload.Images,
		IsFeatured:  payload.IsFeatured,
		IsActive:    payload.IsActive,
		Order:       payload.Order,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *API) handleProjectUpdate(w http.ResponseWriter, r *http.Request) {
	if api.projects == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	var payload projectPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	view, err := api.projects.Update(r.Context(), id, projects.UpdateInput{
		Name:        payload.Name,
		Description: payload.Description,
		Objectives:  payload.Objectives,
		Benefits:    payload.Benefits,
		Images:      payload.Images,
		IsFeatured:  payload.IsFeatured,
		IsActive:    payload.IsActive,
		Order:       payload.Order,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (api *API) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	if api.projects == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := api.projects.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Project deleted successfully"})
}
