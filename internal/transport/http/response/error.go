package response

import (
	"errors"
	"net/http"

	"github.com/registroapp/usuario-service/internal/domain"
	"github.com/registroapp/usuario-service/internal/logger"
)

// Message is the legacy error/success body: a single "message" field.
type Message struct {
	Message string `json:"message"`
}

// WriteError converts a domain error into the legacy {"message": ...} body.
// Non-domain errors become an opaque 500; causes are logged, never sent.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Error en el servidor"

	var de *domain.Error
	if errors.As(err, &de) {
		status = statusFromKind(de.Kind)
		message = de.Message
	}

	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	WriteJSON(w, status, Message{Message: message})
}

// statusFromKind maps domain error kinds to HTTP status codes. Conflicts map
// to 400 because the legacy clients expect duplicate email as a bad request.
func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInfrastructure, domain.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
