package settings

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// FetchSiteSettings handles GET /settings. Built-in defaults are served
// until the settings rows load, so this never 404s.
func (srm *SettingsRoutesManager) FetchSiteSettings(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(srm.catalog.SiteSettings()),
		gecho.Send(),
	)
}
