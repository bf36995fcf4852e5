package admin

import (
	"net/http"

	"cocomanthra_server/lib"
	"cocomanthra_server/store"
	"cocomanthra_server/structs"

	"github.com/MonkyMars/gecho"
)

// UpdateHeroProduct replaces the landing page hero record wholesale.
func (ar *AdminRoutesManager) UpdateHeroProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.HeroProduct](r)
	if err != nil {
		ar.logger.Debug("Failed to extract and validate body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the hero product information and try again"), gecho.Send())
		return
	}

	if err := ar.catalog.UpdateHeroProduct(r.Context(), *body); err != nil {
		ar.respondWriteError(w, err, "Unable to update hero product. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Hero product updated successfully"),
		gecho.Send(),
	)
}

// UpdateBrandSettings patches the brand name and tagline.
func (ar *AdminRoutesManager) UpdateBrandSettings(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[store.SettingsPatch](r)
	if err != nil {
		ar.logger.Debug("Failed to extract and validate body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the brand settings and try again"), gecho.Send())
		return
	}

	if err := ar.catalog.UpdateSiteSettings(r.Context(), *body); err != nil {
		ar.respondWriteError(w, err, "Unable to update brand settings. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Brand settings updated successfully"),
		gecho.Send(),
	)
}
