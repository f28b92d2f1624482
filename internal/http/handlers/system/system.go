// Package system serves the endpoints that describe the running service
// and the caller, rather than any stored record.
package system

import (
	"net/http"

	"github.com/ucsb-cs156/campus-api/internal/auth"
	"github.com/ucsb-cs156/campus-api/internal/utils/response"
)

// Info is what GET /api/systemInfo reports.
type Info struct {
	Env           string `json:"env"`
	Version       string `json:"version"`
	StorageDriver string `json:"storageDriver"`
}

// Authority is one granted role, in the shape the front end expects.
type Authority struct {
	Authority string `json:"authority"`
}

// User identifies the caller.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CurrentUserResponse is the body of GET /api/currentUser.
type CurrentUserResponse struct {
	User  User        `json:"user"`
	Roles []Authority `json:"roles"`
}

// SystemInfo returns a handler reporting info. It needs no role.
func SystemInfo(info Info) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, info)
	}
}

// CurrentUser reports the authenticated caller and their roles.
// Mount it behind auth.Require(auth.RoleUser, ...).
func CurrentUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.FromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusForbidden, response.AccessDenied())
			return
		}

		roles := make([]Authority, 0, len(p.Roles))
		for _, role := range p.Roles {
			roles = append(roles, Authority{Authority: role})
		}

		response.WriteJSON(w, http.StatusOK, CurrentUserResponse{
			User:  User{Email: p.Email, Name: p.Name},
			Roles: roles,
		})
	}
}
