// Package crud contains the HTTP handlers shared by every record kind.
//
// HANDLER PATTERN USED HERE, THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a controller.
// Each factory below accepts the dependency and returns a function with
// the exact signature the router needs:
//
//	mux.Handle("GET /api/helprequests/all", crud.GetList(helpRequests))
//	//                                      ^^^^^^^^^^^^^^^^^^^^^^^^^^^
//	//                         GetList(...) is called ONCE at startup.
//	//                         It returns a handler func which is called
//	//                         on EVERY incoming request.
//
// The factories are generic over the record type, so one set of handlers
// serves all six kinds.
package crud

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ucsb-cs156/campus-api/internal/auth"
	"github.com/ucsb-cs156/campus-api/internal/resource"
	"github.com/ucsb-cs156/campus-api/internal/types"
	"github.com/ucsb-cs156/campus-api/internal/utils/response"
)

// Register mounts the five routes of c's kind on mux, each behind the
// role it requires:
//
//	GET    {prefix}/all          ROLE_USER   → list
//	GET    {prefix}?id=..        ROLE_USER   → get by key
//	POST   {prefix}/post         ROLE_ADMIN  → create from query/form parameters
//	PUT    {prefix}?id=..        ROLE_ADMIN  → replace from JSON body
//	DELETE {prefix}?id=..        ROLE_ADMIN  → delete
func Register[E types.Entity[E, K], K comparable](mux *http.ServeMux, c *resource.Controller[E, K]) {
	prefix := c.Kind().Path

	mux.Handle("GET "+prefix+"/all", auth.Require(auth.RoleUser, GetList(c)))
	mux.Handle("GET "+prefix, auth.Require(auth.RoleUser, GetByKey(c)))
	mux.Handle("POST "+prefix+"/post", auth.Require(auth.RoleAdmin, New(c)))
	mux.Handle("PUT "+prefix, auth.Require(auth.RoleAdmin, Update(c)))
	mux.Handle("DELETE "+prefix, auth.Require(auth.RoleAdmin, Delete(c)))
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET {prefix}/all
// Returns a JSON array of every record, oldest first.
// Returns an empty array [] (not null) when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList[E types.Entity[E, K], K comparable](c *resource.Controller[E, K]) http.HandlerFunc {
	kind := c.Kind().Name
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing records", slog.String("kind", kind))

		all, err := c.List(r.Context())
		if err != nil {
			writeError(w, kind, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, all)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByKey handles GET {prefix}?id=<key>
//
// Error responses:
//
//	400 Bad Request   key missing or malformed
//	404 Not Found     { "type": "EntityNotFoundException",
//	                     "message": "HelpRequest with id 15 not found" }
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByKey[E types.Entity[E, K], K comparable](c *resource.Controller[E, K]) http.HandlerFunc {
	kind := c.Kind().Name
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := keyFromQuery(w, r, c)
		if !ok {
			return
		}
		slog.Info("getting a record", slog.String("kind", kind), slog.Any("key", key))

		e, err := c.Get(r.Context(), key)
		if err != nil {
			writeError(w, kind, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, e)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST {prefix}/post
// Creates a record from query-string or form parameters, one per field:
//
//	POST /api/ucsborganization/post?orgCode=ZPR&orgTranslationShort=ZETA_PHI_RHO&...
//
// Every parameter is required. The persisted record, key included, is
// echoed back with 200 OK.
// ─────────────────────────────────────────────────────────────────────────────
func New[E types.Entity[E, K], K comparable](c *resource.Controller[E, K]) http.HandlerFunc {
	kind := c.Kind()
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a record", slog.String("kind", kind.Name))

		// ParseForm merges the query string with an urlencoded body.
		if err := r.ParseForm(); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.InvalidArgument(err.Error()))
			return
		}

		params := resource.NewParams(r.Form)
		entity := kind.Decode(params)
		if err := params.Err(); err != nil {
			writeError(w, kind.Name, err)
			return
		}

		saved, err := c.Create(r.Context(), entity)
		if err != nil {
			writeError(w, kind.Name, err)
			return
		}

		slog.Info("record created", slog.String("kind", kind.Name), slog.Any("key", saved.Key()))
		response.WriteJSON(w, http.StatusOK, saved)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT {prefix}?id=<key>
// Replaces ALL fields of an existing record with the JSON body; fields
// left out of the body are reset to their zero value. The key in the
// query string wins over any key in the body.
//
// Error responses:
//
//	400 Bad Request   bad key, empty or malformed body, failed validation
//	404 Not Found     no record with that key
//
// ─────────────────────────────────────────────────────────────────────────────
func Update[E types.Entity[E, K], K comparable](c *resource.Controller[E, K]) http.HandlerFunc {
	kind := c.Kind().Name
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := keyFromQuery(w, r, c)
		if !ok {
			return
		}
		slog.Info("updating a record", slog.String("kind", kind), slog.Any("key", key))

		var incoming E
		err := json.NewDecoder(r.Body).Decode(&incoming)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.InvalidArgument("request body is empty"))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.InvalidArgument(err.Error()))
			return
		}

		updated, err := c.Update(r.Context(), key, incoming)
		if err != nil {
			writeError(w, kind, err)
			return
		}

		slog.Info("record updated", slog.String("kind", kind), slog.Any("key", key))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE {prefix}?id=<key>
//
// Success response (200 OK):
//
//	{ "message": "HelpRequest with id 15 deleted" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete[E types.Entity[E, K], K comparable](c *resource.Controller[E, K]) http.HandlerFunc {
	kind := c.Kind().Name
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := keyFromQuery(w, r, c)
		if !ok {
			return
		}
		slog.Info("deleting a record", slog.String("kind", kind), slog.Any("key", key))

		msg, err := c.Delete(r.Context(), key)
		if err != nil {
			writeError(w, kind, err)
			return
		}

		slog.Info("record deleted", slog.String("kind", kind), slog.Any("key", key))
		response.WriteJSON(w, http.StatusOK, response.Message{Message: msg})
	}
}

// keyFromQuery reads the kind's key parameter, answering 400 itself when
// it is missing or malformed.
func keyFromQuery[E types.Entity[E, K], K comparable](w http.ResponseWriter, r *http.Request, c *resource.Controller[E, K]) (K, bool) {
	name := c.Kind().KeyParam
	raw := r.URL.Query().Get(name)
	if raw == "" {
		var zero K
		response.WriteJSON(w, http.StatusBadRequest,
			response.InvalidArgument("missing parameter "+name))
		return zero, false
	}

	key, err := c.ParseKey(raw)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.InvalidArgument(err.Error()))
		return key, false
	}
	return key, true
}

// writeError maps controller errors onto status codes. Anything that is
// not a NotFound or InvalidArgument is the store failing: it is logged
// and reported as a bare 500.
func writeError(w http.ResponseWriter, kind string, err error) {
	var notFound *resource.NotFoundError
	var invalid *resource.InvalidArgumentError

	switch {
	case errors.As(err, &notFound):
		response.WriteJSON(w, http.StatusNotFound, response.NotFound(notFound.Error()))
	case errors.As(err, &invalid):
		response.WriteJSON(w, http.StatusBadRequest, response.InvalidArgument(invalid.Error()))
	default:
		slog.Error("request failed",
			slog.String("kind", kind),
			slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.Internal())
	}
}
