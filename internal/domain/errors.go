package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindConflict       ErrKind = "conflict"       // 400 (legacy wire contract, not 409)
	KindAuth           ErrKind = "auth"           // 401
	KindNotFound       ErrKind = "not_found"      // 404
	KindInfrastructure ErrKind = "infrastructure" // 500
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: client-facing text; the HTTP layer sends it verbatim, so it
//   carries the legacy Spanish wording
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "El cuerpo de la petición no es válido", cause)
}

func ErrCamposObligatorios() *Error {
	return New(KindValidation, "missing_fields", "Todos los campos son obligatorios")
}

func ErrFormatoCorreo() *Error {
	return New(KindValidation, "invalid_email", "El formato de correo electrónico no es válido")
}

func ErrCredencialesObligatorias() *Error {
	return New(KindValidation, "missing_credentials", "El correo y la contraseña son obligatorios")
}

func ErrIDInvalido() *Error {
	return New(KindValidation, "invalid_id", "El identificador no es válido")
}

// ----------------------
// Conflict (duplicate email)
// ----------------------

func ErrCorreoRegistrado() *Error {
	return New(KindConflict, "email_already_exists", "El correo ya está registrado")
}

// ----------------------
// Auth (401)
// ----------------------

func ErrContrasenaIncorrecta() *Error {
	return New(KindAuth, "wrong_password", "Contraseña incorrecta")
}

// ----------------------
// Not found (404)
// ----------------------

func ErrUsuarioNotFound() *Error {
	return New(KindNotFound, "user_not_found", "Usuario no encontrado")
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "Error en el servidor", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "Error en el servidor", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "Error en el servidor", cause)
}
