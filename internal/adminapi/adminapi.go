// Package adminapi exposes the storefront operations over HTTP. Every
// request works on the page of the profile bound to its session cookie.
package adminapi

import (
	"net/http"

	"github.com/dame6k/beatstore/internal/app"
	"github.com/dame6k/beatstore/internal/page"
	"github.com/dame6k/beatstore/internal/webserver"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// Init registers every storefront route on the web server.
func Init() {
	registerAuthRoutes()
	registerBeatRoutes()
	registerCatalogRoutes()
	registerCartRoutes()
	registerChromeRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": data})
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, map[string]interface{}{"data": data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, ErrorResponse{Error: code, Message: message, Detail: detail})
}

func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

func GetDB(c echo.Context) *gorm.DB {
	return GetAppContext(c).DB()
}

// currentPage resolves the profile of the request and its open page.
func currentPage(c echo.Context) (*page.Page, string, error) {
	profile, err := webserver.ProfileID(c)
	if err != nil {
		return nil, "", err
	}
	p, err := GetAppContext(c).ProfileCache().Page(profile)
	if err != nil {
		return nil, "", err
	}
	return p, profile, nil
}

// withPage runs h with the request's page, failing when storage is unavailable.
func withPage(h func(c echo.Context, p *page.Page, profile string) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, profile, err := currentPage(c)
		if err != nil {
			return fail(c, http.StatusServiceUnavailable, "STORAGE_ERROR", "No pudimos abrir tu perfil. Intentalo nuevamente.", err.Error())
		}
		return h(c, p, profile)
	}
}

func audit(c echo.Context, profile, name, action, desc string) {
	GetAppContext(c).Audit(app.AuditEntry{
		Profile: profile,
		Name:    name,
		IP:      c.RealIP(),
		Action:  action,
		Desc:    desc,
	})
}
