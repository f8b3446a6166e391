package webserver

import (
	"github.com/dame6k/beatstore/pkg/common"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	SessionName = "beatstore"
	profileKey  = "profile"
)

// ProfileID returns the storage profile bound to the client's cookie,
// issuing a new one on first contact.
func ProfileID(c echo.Context) (string, error) {
	sess, err := session.Get(SessionName, c)
	if sess == nil {
		return "", errors.Wrap(err, "webserver: read session")
	}
	// An unreadable cookie still yields a fresh session.
	if id, ok := sess.Values[profileKey].(string); ok && id != "" {
		return id, nil
	}
	id := common.UUID()
	sess.Values[profileKey] = id
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", errors.Wrap(err, "webserver: save session")
	}
	return id, nil
}
