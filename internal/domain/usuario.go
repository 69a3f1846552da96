package domain

import "regexp"

// Usuario is the persisted account record. Password holds the bcrypt hash
// once the record went through the registration flow; records created via
// the plain save path may leave it empty.
type Usuario struct {
	ID       int64
	Nombre   string
	Apellido string
	Email    string
	Password string
}

// emailPattern reproduces the legacy validation rule verbatim: word
// characters, dots and hyphens in the local part, dot-separated labels of
// word characters and hyphens, and a final label of 2-4 characters.
// Consecutive dots pass and long TLDs fail; both are part of the wire
// contract and must not be "fixed" silently.
var emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w\-]+\.)+[\w\-]{2,4}$`)

// EmailValido reports whether the address matches the legacy pattern.
func EmailValido(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}
