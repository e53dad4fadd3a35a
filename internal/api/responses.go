package api

import (
	"net/http"

	"github.com/phrazzld/genops-api/internal/api/shared"
)

// RespondWithJSON is shared.RespondWithJSON, re-exported for handlers.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	shared.RespondWithJSON(w, r, status, data)
}
