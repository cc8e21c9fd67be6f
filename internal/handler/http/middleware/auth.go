package middleware

import (
	"errors"
	"net/http"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/auth"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/handler/http/response"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts verified access tokens that name a known role.
// Tokens are issued by the identity service; this service only checks them.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if errors.Is(err, jwtauth.ErrExpired) {
			response.HandleError(w, auth.ErrTokenExpired)
			return
		}
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if _, err := jwt.PrincipalFromContext(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
