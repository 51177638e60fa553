package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"stayhub/internal/auth"
	"stayhub/internal/model"
)

// principalFrom resolves the acting principal from the verified JWT the
// middleware stored on the context.
func principalFrom(c echo.Context) (model.Principal, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return model.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return model.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	p := claims.Principal()
	if !p.Role.Valid() {
		return model.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid role in token")
	}
	return p, nil
}
