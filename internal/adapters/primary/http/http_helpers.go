package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	mw "github.com/jdhadshhd/med-point/internal/adapters/primary/http/middleware"
	"github.com/jdhadshhd/med-point/internal/adapters/primary/validation"
	"github.com/jdhadshhd/med-point/internal/auth"
)

// getClaims extracts the authenticated user's claims from the request
// context, writing a 401 response when they are absent.
func getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "Not authorized",
			Code:  "UNAUTHORIZED",
		})
		return nil, false
	}
	return claims, true
}

// parseIDParam extracts and validates a positive integer URL parameter.
func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		v := validation.NewValidator()
		v.Custom(name, false, "Invalid "+name)
		return 0, v.Errors()
	}
	return id, nil
}
