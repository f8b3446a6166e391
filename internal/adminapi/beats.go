package adminapi

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dame6k/beatstore/internal/admin"
	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/internal/page"
	"github.com/dame6k/beatstore/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

var defaultLicenseKeys = []string{"standard", "premium", "exclusiva"}

func registerBeatRoutes() {
	webserver.ApiGET("/beats/custom", withPage(listCustomBeats))
	webserver.ApiGET("/beats/custom/:id", withPage(getCustomBeat))
	webserver.ApiPOST("/admin/beats", withPage(createBeat))
}

func listCustomBeats(c echo.Context, p *page.Page, _ string) error {
	view := p.Beats.View()
	if !p.Auth.IsAdmin() {
		view.Admin = nil
	}
	return ok(c, view)
}

func getCustomBeat(c echo.Context, p *page.Page, _ string) error {
	card, err := p.Beats.SelectLicense(c.Param("id"), c.QueryParam("license"))
	if errors.Is(err, admin.ErrUnknownBeat) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Beat not found", nil)
	}
	return ok(c, card)
}

func createBeat(c echo.Context, p *page.Page, profile string) error {
	form, err := parseBeatForm(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse upload form", err.Error())
	}

	beat, err := p.Beats.CreateBeat(c.Request().Context(), *form)
	if err != nil {
		status, code, msg := beatErrorMessage(err)
		return fail(c, status, code, msg, nil)
	}
	audit(c, profile, beat.CreatedBy, domain.ActionBeatAdd, beat.ID+" "+beat.Title)
	return created(c, map[string]interface{}{
		"message": "Beat guardado correctamente.",
		"beat":    beat,
	})
}

// beatErrorMessage maps a CreateBeat failure to its status and the
// message shown next to the upload form.
func beatErrorMessage(err error) (int, string, string) {
	var le *admin.LicenseError
	if errors.As(err, &le) {
		switch {
		case errors.Is(err, admin.ErrInvalidLicensePrice):
			return http.StatusBadRequest, "INVALID_LICENSE_PRICE", "Define un precio válido para la licencia " + le.License + "."
		case errors.Is(err, admin.ErrMissingPackage):
			return http.StatusBadRequest, "MISSING_PACKAGE", "Adjunta el paquete de entrega para la licencia " + le.License + "."
		default:
			return http.StatusBadRequest, "UNPROCESSABLE_PACKAGE", "No pudimos procesar el paquete de la licencia " + le.License + "."
		}
	}
	switch {
	case errors.Is(err, admin.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "Solo un administrador puede publicar beats."
	case errors.Is(err, admin.ErrNoLicense):
		return http.StatusBadRequest, "NO_LICENSE", "Activa al menos una licencia para publicar el beat."
	case errors.Is(err, admin.ErrMissingField):
		return http.StatusBadRequest, "MISSING_FIELDS", "Completá todos los campos obligatorios y subí la imagen y preview."
	default:
		return http.StatusInternalServerError, "SAVE_FAILED", "No pudimos guardar el beat. Intentalo nuevamente."
	}
}

func parseBeatForm(c echo.Context) (*admin.BeatForm, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	form := &admin.BeatForm{
		Title:   c.FormValue("title"),
		Genre:   c.FormValue("category"),
		Offer:   c.FormValue("offer"),
		Files:   c.FormValue("files"),
		Cover:   formUpload(mf, "image"),
		Preview: formUpload(mf, "preview"),
	}

	keys := mf.Value["license"]
	if len(keys) == 0 {
		keys = defaultLicenseKeys
	}
	for _, key := range keys {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		field := "license_" + key + "_"
		form.Licenses = append(form.Licenses, admin.LicenseInput{
			Key:     key,
			Name:    c.FormValue(field + "name"),
			Enabled: checked(c.FormValue(field + "enabled")),
			Price:   c.FormValue(field + "price"),
			Files:   c.FormValue(field + "files"),
			Package: formUpload(mf, field+"package"),
		})
	}
	return form, nil
}

func checked(v string) bool {
	if strings.EqualFold(v, "on") {
		return true
	}
	return cast.ToBool(v)
}

func formUpload(mf *multipart.Form, field string) *admin.Upload {
	files := mf.File[field]
	if len(files) == 0 || files[0].Size == 0 {
		return nil
	}
	fh := files[0]
	return &admin.Upload{
		Name: fh.Filename,
		Type: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}
