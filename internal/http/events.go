package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/afdei/federation-cms/internal/bilingual"
	"github.com/afdei/federation-cms/internal/events"
)

type imagePayload struct {
	URL *string `json:"url"`
}

type eventPayload struct {
	Title       *bilingual.TextPatch `json:"title"`
	Description *bilingual.TextPatch `json:"description"`
	Location    *bilingual.TextPatch `json:"location"`
	Date        *string              `json:"date"`
	Image       *imagePayload        `json:"image"`
	IsFeatured  *bool                `json:"isFeatured"`
	IsActive    *bool                `json:"isActive"`
}

func (p eventPayload) date() (*time.Time, error) {
	if p.Date == nil || strings.TrimSpace(*p.Date) == "" {
		return nil, nil
	}
	parsed, err := events.ParseDate(*p.Date)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (p eventPayload) imageURL() *string {
	if p.Image == nil {
		return nil
	}
	return p.Image.URL
}

func (api *API) registerEventRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "events")
	mux.HandleFunc("GET "+root, api.handleEventList)
	mux.HandleFunc("GET "+root+"/{id}", api.handleEventGet)
	mux.HandleFunc("POST "+root, api.requireAuth(api.handleEventCreate))
	mux.HandleFunc("PUT "+root+"/{id}", api.requireAuth(api.handleEventUpdate))
	mux.HandleFunc("DELETE "+root+"/{id}", api.requireAuth(api.handleEventDelete))
}

func (api *API) handleEventList(w http.ResponseWriter, r *http.Request) {
	if api.events == nil {
		writeUnavailable(w)
		return
	}
	list, err := api.events.List(r.Context(), events.ListOptions{
		FeaturedOnly: parseBoolQuery(r.URL.Query().Get("featured"), false),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleEventGet(w http.ResponseWriter, r *http.Request) {
	if api.events == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	view, err := api.events.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (api *API) handleEventCreate(w http.ResponseWriter, r *http.Request) {
	if api.events == nil {
		writeUnavailable(w)
		return
	}
	var payload eventPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	date, err := payload.date()
	if err != nil {
		writeError(w, err)
		return
	}
	input := events.CreateInput{
		Title:       payload.Title.Text(),
		Description: payload.Description.Text(),
		Location:    payload.Location.Text(),
		IsFeatured:  payload.IsFeatured,
		IsActive:    payload.IsActive,
	}
	if date != nil {
		input.Date = *date
	}
	if url := payload.imageURL(); url != nil {
		input.ImageURL = *url
	}
	created, err := api.events.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *API) handleEventUpdate(w http.ResponseWriter, r *http.Request) {
	if api.events == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	var payload eventPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	date, err := payload.date()
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := api.events.Update(r.Context(), id, events.UpdateInput{
		Title:       payload.Title,
		Description: payload.Description,
		Location:    payload.Location,
		Date:        date,
		ImageURL:    payload.imageURL(),
		IsFeatured:  payload.IsFeatured,
		IsActive:    payload.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (api *API) handleEventDelete(w http.ResponseWriter, r *http.Request) {
	if api.events == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := api.events.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Event deleted successfully"})
}
