package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// Identity headers set by the gateway in front of the service.
const (
	HeaderUserID  = "X-User-ID"
	HeaderStaffID = "X-Staff-ID"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	staffIDKey contextKey = "staffID"
)

// Auth requires the request to carry a valid X-User-ID or X-Staff-ID
// header and stores the parsed identities in the request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, userOK, err := parseIDHeader(r, HeaderUserID)
		if err != nil {
			respondUnauthorized(w)
			return
		}
		staffID, staffOK, err := parseIDHeader(r, HeaderStaffID)
		if err != nil {
			respondUnauthorized(w)
			return
		}

		if !userOK && !staffOK {
			respondUnauthorized(w)
			return
		}

		if userOK {
			ctx = context.WithValue(ctx, userIDKey, userID)
		}
		if staffOK {
			ctx = context.WithValue(ctx, staffIDKey, staffID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffAuth requires a valid X-Staff-ID header.
func StaffAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staffID, ok, err := parseIDHeader(r, HeaderStaffID)
		if err != nil || !ok {
			respondUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)

		// A staff member may also carry a user identity.
		if userID, userOK, err := parseIDHeader(r, HeaderUserID); err == nil && userOK {
			ctx = context.WithValue(ctx, userIDKey, userID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// StaffIDFromContext returns the authenticated staff id, if any.
func StaffIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(staffIDKey).(int64)
	return id, ok
}

// respondUnauthorized mirrors the shared handlers envelope; middleware
// cannot import that package without a cycle.
func respondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required"}`))
}

func parseIDHeader(r *http.Request, header string) (int64, bool, error) {
	raw := r.Header.Get(header)
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false, strconv.ErrSyntax
	}
	return id, true, nil
}
