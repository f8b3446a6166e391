package adminapi

import (
	"github.com/dame6k/beatstore/internal/page"
	"github.com/dame6k/beatstore/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerChromeRoutes() {
	webserver.ApiGET("/chrome/cards", withPage(chromeCards))
	webserver.ApiPOST("/chrome/audio/play", withPage(playAudio))
	webserver.ApiPOST("/chrome/audio/pause", withPage(pauseAudio))
}

func chromeCards(c echo.Context, p *page.Page, _ string) error {
	cards := p.Chrome.Filter(c.QueryParam("filter"))
	return ok(c, map[string]interface{}{
		"filter": p.Chrome.Filters.Active(),
		"cards":  cards,
	})
}

// playAudio starts the player with the given id, pausing the other guarded
// players. Ids carry their grid prefix, e.g. catalog/exotica.
func playAudio(c echo.Context, p *page.Page, _ string) error {
	p.Chrome.Audio.Play(c.QueryParam("id"))
	return ok(c, map[string]interface{}{"playing": p.Chrome.Audio.Playing()})
}

func pauseAudio(c echo.Context, p *page.Page, _ string) error {
	p.Chrome.Audio.Pause(c.QueryParam("id"))
	return ok(c, map[string]interface{}{"playing": p.Chrome.Audio.Playing()})
}
