// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Error responses always look like:
//
//	{ "type": "EntityNotFoundException", "message": "HelpRequest with id 15 not found" }
//
// The type names are the ones the front end already switches on.
package response

import (
	"encoding/json"
	"net/http"
)

// Error types carried in the "type" field.
const (
	TypeNotFound        = "EntityNotFoundException"
	TypeInvalidArgument = "IllegalArgumentException"
	TypeAccessDenied    = "AccessDeniedException"
	TypeInternal        = "InternalServerError"
)

// Error is the standard envelope returned for error cases.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Message is the body of a successful operation with nothing else to
// return, e.g. a delete.
type Message struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func NotFound(msg string) Error {
	return Error{Type: TypeNotFound, Message: msg}
}

func InvalidArgument(msg string) Error {
	return Error{Type: TypeInvalidArgument, Message: msg}
}

func AccessDenied() Error {
	return Error{Type: TypeAccessDenied, Message: "Access Denied"}
}

// Internal deliberately hides the underlying error from the client; the
// caller is expected to log it.
func Internal() Error {
	return Error{Type: TypeInternal, Message: "internal server error"}
}
