package controllers

import (
	"net/http"
	"time"

	"github.com/ruchulu/storefront-backend/api/middleware"
	"github.com/ruchulu/storefront-backend/api/responses"
	pkgauth "github.com/ruchulu/storefront-backend/pkg/auth"
	"github.com/ruchulu/storefront-backend/pkg/config"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	"github.com/ruchulu/storefront-backend/pkg/logger"
)

// SessionToken issues a bearer token bound to the caller's session. Order
// placement requires it; the rest of the storefront only needs the session
// header.
func SessionToken(cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := middleware.SessionIDFromContext(r.Context())
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session id is required"))
			return
		}

		signed, err := pkgauth.MintSessionToken(cfg, time.Now(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token"))
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"token":      signed,
			"session_id": id,
		})
	}
}
