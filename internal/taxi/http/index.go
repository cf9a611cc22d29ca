package http

import (
	"net/http"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/service"
)

type IndexHandler struct {
	Index *service.IndexService
}

// Home godoc
//
//	@Summary	Fleet overview
//	@Tags		Index
//	@Produce	json,html
//	@Success	200	{object}	taxisdk.StatsResponse
//	@Failure	401	{object}	taxisdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/ [get]
func (h *IndexHandler) Home(r *http.Request, caller *domain.CallerIdentity) Result {
	st, err := h.Index.Stats(r.Context(), caller)
	if err != nil {
		return failed(err)
	}
	return page("taxi/index.html", Context{
		"num_drivers":       st.NumDrivers,
		"num_cars":          st.NumCars,
		"num_manufacturers": st.NumManufacturers,
	})
}
