package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/afdei/federation-cms/internal/auth"
	"github.com/afdei/federation-cms/internal/contact"
	"github.com/afdei/federation-cms/internal/events"
	"github.com/afdei/federation-cms/internal/media"
	"github.com/afdei/federation-cms/internal/projects"
	"github.com/afdei/federation-cms/internal/sections"
	"github.com/afdei/federation-cms/internal/validation"
)

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}

func writeUnavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	switch {
	case errors.Is(err, sections.ErrSectionNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: "Content not found"}
	case errors.Is(err, events.ErrEventNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: "Event not found"}
	case errors.Is(err, projects.ErrProjectNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: "Project not found"}
	case errors.Is(err, contact.ErrSubmissionNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: "Submission not found"}
	case errors.Is(err, media.ErrAssetNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: "Media not found"}
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: "User not found"}
	}

	if errors.Is(err, sections.ErrSectionExists) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, media.ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge, errorResponse{
			Error:   "payload_too_large",
			Message: err.Error(),
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryAuth) || errors.Is(err, auth.ErrInvalidCredentials) {
		return http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: "Invalid credentials",
		}
	}

	if errors.Is(err, validation.ErrSchemaInvalid) || errors.Is(err, validation.ErrSchemaValidation) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}
	}

	if errors.Is(err, sections.ErrSectionRequired) ||
		errors.Is(err, sections.ErrSectionInvalid) ||
		errors.Is(err, sections.ErrOrderInvalid) ||
		errors.Is(err, events.ErrDateInvalid) ||
		goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}
	}

	if errors.Is(err, media.ErrStoreUnavailable) {
		return http.StatusServiceUnavailable, errorResponse{
			Error:   "service_unavailable",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}

func parseBoolQuery(value string, defaultValue bool) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// rawHalf turns an undecoded language half into a write value. Absent and
// null halves become a nil interface so the service applies its defaults.
func rawHalf(raw json.RawMessage) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err == nil {
			return encoded
		}
	}
	return json.RawMessage(trimmed)
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
