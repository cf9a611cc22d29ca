package http

import (
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/service"
)

const manufacturerListPath = "/manufacturers/"

type ManufacturerHandler struct {
	Manufacturers *service.ManufacturerService
	PageSize      int
}

// List godoc
//
//	@Summary		List manufacturers
//	@Description	Manufacturers ordered by name. "name" filters by a case-insensitive substring.
//	@Tags			Manufacturers
//	@Produce		json,html
//	@Param			name	query		string					false	"Name contains"
//	@Param			page	query		int						false	"Page number"
//	@Success		200		{object}	taxisdk.ManufacturerListResponse
//	@Failure		401		{object}	taxisdk.ErrorResponse
//	@Failure		404		{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/manufacturers/ [get]
func (h *ManufacturerHandler) List(r *http.Request, caller *domain.CallerIdentity) Result {
	opts, err := listOptions(r, "name", h.PageSize)
	if err != nil {
		return failed(err)
	}
	p, err := h.Manufacturers.List(r.Context(), caller, opts)
	if err != nil {
		return failed(err)
	}
	if err := pageInRange(p); err != nil {
		return failed(err)
	}
	return page("taxi/manufacturer_list.html", listContext("manufacturer_list", "name", opts, p))
}

// Detail godoc
//
//	@Summary	Get a manufacturer
//	@Tags		Manufacturers
//	@Produce	json,html
//	@Param		id	path		string	true	"Manufacturer ID"
//	@Success	200	{object}	taxisdk.ManufacturerResponse
//	@Failure	404	{object}	taxisdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/manufacturers/{id}/ [get]
func (h *ManufacturerHandler) Detail(r *http.Request, caller *domain.CallerIdentity) Result {
	id, err := pathID(r)
	if err != nil {
		return failed(err)
	}
	m, err := h.Manufacturers.Get(r.Context(), caller, id)
	if err != nil {
		return failed(err)
	}
	return page("taxi/manufacturer_detail.html", Context{"manufacturer": m})
}

// Create godoc
//
//	@Summary		Create a manufacturer
//	@Description	GET renders the form. POST creates the manufacturer and redirects to the list.
//	@Tags			Manufacturers
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json,html
//	@Param			body	body		taxisdk.ManufacturerRequest	true	"Manufacturer"
//	@Success		302		{object}	taxisdk.ManufacturerResponse
//	@Failure		422		{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/manufacturers/create/ [post]
func (h *ManufacturerHandler) Create(r *http.Request, caller *domain.CallerIdentity) Result {
	const tmpl = "taxi/manufacturer_form.html"

	if r.Method == http.MethodGet {
		return page(tmpl, Context{"form": domain.ManufacturerInput{}})
	}

	in, err := bindManufacturer(r)
	if err != nil {
		return failed(err)
	}
	m, err := h.Manufacturers.Create(r.Context(), caller, in)
	if err != nil {
		return invalid(tmpl, Context{"form": in}, err)
	}

	res := redirect(manufacturerListPath)
	res.Context = Context{"manufacturer": m}
	return res
}

// Update godoc
//
//	@Summary		Update a manufacturer
//	@Description	GET renders the form. POST saves and redirects to the detail page.
//	@Tags			Manufacturers
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json,html
//	@Param			id		path		string						true	"Manufacturer ID"
//	@Param			body	body		taxisdk.ManufacturerRequest	true	"Manufacturer"
//	@Success		302		{object}	taxisdk.ManufacturerResponse
//	@Failure		404		{object}	taxisdk.ErrorResponse
//	@Failure		422		{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/manufacturers/{id}/update/ [post]
func (h *ManufacturerHandler) Update(r *http.Request, caller *domain.CallerIdentity) Result {
	const tmpl = "taxi/manufacturer_form.html"
	id, err := pathID(r)
	if err != nil {
		return failed(err)
	}

	current, err := h.Manufacturers.Get(r.Context(), caller, id)
	if err != nil {
		return failed(err)
	}
	if r.Method == http.MethodGet {
		return page(tmpl, Context{
			"manufacturer": current,
			"form":         domain.ManufacturerInput{Name: current.Name, Country: current.Country},
		})
	}

	in, err := bindManufacturer(r)
	if err != nil {
		return failed(err)
	}
	m, err := h.Manufacturers.Update(r.Context(), caller, id, in)
	if err != nil {
		return invalid(tmpl, Context{"manufacturer": current, "form": in}, err)
	}

	res := redirect(manufacturerListPath + m.ID + "/")
	res.Context = Context{"manufacturer": m}
	return res
}

// Delete godoc
//
//	@Summary		Delete a manufacturer
//	@Description	GET renders the confirmation page. POST deletes the manufacturer and its cars.
//	@Tags			Manufacturers
//	@Produce		json,html
//	@Param			id	path	string	true	"Manufacturer ID"
//	@Success		302
//	@Failure		404	{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/manufacturers/{id}/delete/ [post]
func (h *ManufacturerHandler) Delete(r *http.Request, caller *domain.CallerIdentity) Result {
	id, err := pathID(r)
	if err != nil {
		return failed(err)
	}

	if r.Method == http.MethodGet {
		m, err := h.Manufacturers.Get(r.Context(), caller, id)
		if err != nil {
			return failed(err)
		}
		return page("taxi/manufacturer_confirm_delete.html", Context{"manufacturer": m})
	}

	if err := h.Manufacturers.Delete(r.Context(), caller, id); err != nil {
		return failed(err)
	}
	return redirect(manufacturerListPath)
}

func bindManufacturer(r *http.Request) (domain.ManufacturerInput, error) {
	var in domain.ManufacturerInput
	err := bind(r, &in, func(f url.Values) {
		in.Name = f.Get("name")
		in.Country = f.Get("country")
	})
	return in, err
}
