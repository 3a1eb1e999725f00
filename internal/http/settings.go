package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

type settingResponse struct {
	Key   string `json:"key,omitempty"`
	Value any    `json:"value"`
}

func (api *API) registerSettingsRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "settings")
	mux.HandleFunc("GET "+root, api.handleSettingsAll)
	mux.HandleFunc("GET "+root+"/{key}", api.handleSettingGet)
	mux.HandleFunc("PUT "+root, api.requireAuth(api.handleSettingsUpdate))
	mux.HandleFunc("PUT "+root+"/{key}", api.requireAuth(api.handleSettingUpdate))
}

func (api *API) handleSettingsAll(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeUnavailable(w)
		return
	}
	values, err := api.settings.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (api *API) handleSettingGet(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeUnavailable(w)
		return
	}
	key := r.PathValue("key")
	value, found, err := api.settings.Get(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, settingResponse{})
		return
	}
	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: value})
}

func (api *API) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeUnavailable(w)
		return
	}
	var payload map[string]json.RawMessage
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	values := make(map[string]any, len(payload))
	for key, raw := range payload {
		values[key] = raw
	}
	if err := api.settings.SetMany(r.Context(), values); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Settings updated successfully"})
}

func (api *API) handleSettingUpdate(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeUnavailable(w)
		return
	}
	var payload struct {
		Value json.RawMessage `json:"value"`
	}
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	var value any = payload.Value
	if len(payload.Value) == 0 {
		value = nil
	}
	if err := api.settings.Set(r.Context(), r.PathValue("key"), value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Setting updated successfully"})
}
