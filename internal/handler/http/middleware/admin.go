package middleware

import (
	"net/http"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/user"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/handler/http/response"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/jwt"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := jwt.PrincipalFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !principal.IsAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
