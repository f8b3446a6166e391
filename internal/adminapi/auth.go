package adminapi

import (
	"errors"
	"net/http"

	"github.com/dame6k/beatstore/internal/auth"
	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/internal/page"
	"github.com/dame6k/beatstore/internal/webserver"
	"github.com/labstack/echo/v4"
)

type loginPayload struct {
	Email    string `json:"email" form:"email" validate:"omitempty,max=254"`
	Password string `json:"password" form:"password" validate:"omitempty,max=128"`
}

type registerPayload struct {
	Name     string `json:"name" form:"name" validate:"omitempty,max=120"`
	Email    string `json:"email" form:"email" validate:"omitempty,max=254"`
	Password string `json:"password" form:"password" validate:"omitempty,max=128"`
}

func registerAuthRoutes() {
	webserver.ApiPOST("/auth/login", withPage(login))
	webserver.ApiPOST("/auth/register", withPage(register))
	webserver.ApiPOST("/auth/logout", withPage(logout))
	webserver.ApiGET("/auth/session", withPage(currentSession))
}

func login(c echo.Context, p *page.Page, profile string) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Credenciales incorrectas. Intentalo nuevamente.", err.Error())
	}

	sess, err := p.Auth.Login(payload.Email, payload.Password)
	switch {
	case errors.Is(err, auth.ErrMissingField):
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "Ingresá email y contraseña para continuar.", nil)
	case errors.Is(err, auth.ErrInvalidCredentials):
		audit(c, profile, payload.Email, domain.ActionLoginFail, "invalid credentials")
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Credenciales incorrectas. Intentalo nuevamente.", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "No pudimos iniciar sesión. Intentalo nuevamente.", err.Error())
	}
	audit(c, profile, sess.Email, domain.ActionLogin, "role "+sess.Role)
	return ok(c, p.Auth.View())
}

func register(c echo.Context, p *page.Page, profile string) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse account", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Revisá los datos ingresados.", err.Error())
	}

	sess, err := p.Auth.Register(payload.Name, payload.Email, payload.Password)
	switch {
	case errors.Is(err, auth.ErrMissingField):
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "Completá todos los campos para registrarte.", nil)
	case errors.Is(err, auth.ErrWeakPassword):
		return fail(c, http.StatusBadRequest, "WEAK_PASSWORD", "La contraseña debe tener al menos 6 caracteres.", nil)
	case errors.Is(err, auth.ErrDuplicateEmail):
		return fail(c, http.StatusConflict, "DUPLICATE_EMAIL", "Ya existe una cuenta con ese email.", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "No pudimos crear la cuenta. Intentalo nuevamente.", err.Error())
	}
	audit(c, profile, sess.Email, domain.ActionRegister, "new account")
	return created(c, p.Auth.View())
}

func logout(c echo.Context, p *page.Page, profile string) error {
	who := p.Auth.View().Email
	if err := p.Auth.Logout(); err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "No pudimos cerrar la sesión.", err.Error())
	}
	if who != "" {
		audit(c, profile, who, domain.ActionLogout, "")
	}
	return ok(c, p.Auth.View())
}

func currentSession(c echo.Context, p *page.Page, _ string) error {
	return ok(c, p.Auth.View())
}
