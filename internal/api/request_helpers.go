package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/genops-api/internal/api/shared"
	"github.com/phrazzld/genops-api/internal/domain"
	"github.com/phrazzld/genops-api/internal/platform/logger"
)

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", nil)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// requireIdentity returns the verified identity placed in the context by the
// auth middleware. It writes a 401 and returns false if there is none.
func requireIdentity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("identity missing from request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return domain.Identity{}, false
	}
	return identity, true
}

// handleIdentityAndPathID combines requireIdentity and getPathID, writing an
// error response if either fails.
func handleIdentityAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
) (domain.Identity, int64, bool) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return domain.Identity{}, 0, false
	}

	id, err := getPathID(r, paramName)
	if err != nil {
		logger.FromContext(r.Context()).Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return domain.Identity{}, 0, false
	}
	return identity, id, true
}

// decodeAndValidate decodes the JSON body into v and validates it, writing a
// 400 response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		HandleAPIError(w, r, domain.NewValidationError("", "invalid request body", nil), "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
