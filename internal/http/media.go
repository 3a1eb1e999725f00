package http

import (
	"errors"
	"net/http"

	"github.com/afdei/federation-cms/internal/media"
)

// multipart parts above this size spill to temporary files.
const uploadMemoryBytes = 8 << 20

func (api *API) registerMediaRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "media")
	mux.HandleFunc("GET "+root, api.requireAuth(api.handleMediaList))
	mux.HandleFunc("POST "+root+"/upload", api.requireAuth(api.handleMediaUpload))
	mux.HandleFunc("DELETE "+root+"/{id}", api.requireAuth(api.handleMediaDelete))
}

func (api *API) handleMediaList(w http.ResponseWriter, r *http.Request) {
	if api.media == nil {
		writeUnavailable(w)
		return
	}
	list, err := api.media.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleMediaUpload(w http.ResponseWriter, r *http.Request) {
	if api.media == nil {
		writeUnavailable(w)
		return
	}
	// leave room for the multipart envelope around the file part
	r.Body = http.MaxBytesReader(w, r.Body, api.maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(uploadMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, media.ErrFileTooLarge)
			return
		}
		writeBadRequest(w, "No file uploaded")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "No file uploaded")
		return
	}
	defer file.Close()

	asset, err := api.media.Upload(r.Context(), media.UploadInput{
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Body:     file,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (api *API) handleMediaDelete(w http.ResponseWriter, r *http.Request) {
	if api.media == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := api.media.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Media deleted successfully"})
}
