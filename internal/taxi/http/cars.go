package http

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/service"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
)

const carListPath = "/cars/"

type CarHandler struct {
	Cars          *service.CarService
	Manufacturers *service.ManufacturerService
	Drivers       *service.DriverService
	PageSize      int
}

// carForm echoes a submitted car form back into the template.
type carForm struct {
	domain.CarInput
}

func (f carForm) Selected(driverID string) bool {
	return slices.Contains(f.DriverIDs, driverID)
}

// List godoc
//
//	@Summary		List cars
//	@Description	Cars ordered by model. "model" filters by a case-insensitive substring.
//	@Tags			Cars
//	@Produce		json,html
//	@Param			model	query		string	false	"Model contains"
//	@Param			page	query		int		false	"Page number"
//	@Success		200		{object}	taxisdk.CarListResponse
//	@Failure		401		{object}	taxisdk.ErrorResponse
//	@Failure		404		{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/cars/ [get]
func (h *CarHandler) List(r *http.Request, caller *domain.CallerIdentity) Result {
	opts, err := listOptions(r, "model", h.PageSize)
	if err != nil {
		return failed(err)
	}
	p, err := h.Cars.List(r.Context(), caller, opts)
	if err != nil {
		return failed(err)
	}
	if err := pageInRange(p); err != nil {
		return failed(err)
	}
	return page("taxi/car_list.html", listContext("car_list", "model", opts, p))
}

// Detail godoc
//
//	@Summary	Get a car with its manufacturer and drivers
//	@Tags		Cars
//	@Produce	json,html
//	@Param		id	path		string	true	"Car ID"
//	@Success	200	{object}	taxisdk.CarResponse
//	@Failure	404	{object}	taxisdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/cars/{id}/ [get]
func (h *CarHandler) Detail(r *http.Request, caller *domain.CallerIdentity) Result {
	id, err := pathID(r)
	if err != nil {
		return failed(err)
	}
	c, err := h.Cars.Get(r.Context(), caller, id)
	if err != nil {
		return failed(err)
	}
	return page("taxi/car_detail.html", Context{
		"car":         c,
		"is_assigned": c.HasDriver(caller.DriverID),
	})
}

// Create godoc
//
//	@Summary		Create a car
//	@Description	GET renders the form. POST creates the car with its drivers and redirects to the list.
//	@Tags			Cars
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json,html
//	@Param			body	body		taxisdk.CarRequest	true	"Car"
//	@Success		302		{object}	taxisdk.CarResponse
//	@Failure		422		{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/cars/create/ [post]
func (h *CarHandler) Create(r *http.Request, caller *domain.CallerIdentity) Result {
	const tmpl = "taxi/car_form.html"
	ctx := r.Context()

	if r.Method == http.MethodGet {
		return h.form(r, caller, tmpl, Context{"form": carForm{}}, nil)
	}

	in, err := bindCar(r)
	if err != nil {
		return failed(err)
	}
	c, err := h.Cars.Create(ctx, caller, in)
	if err != nil {
		return h.form(r, caller, tmpl, Context{"form": carForm{in}}, err)
	}

	res := redirect(carListPath)
	res.Context = Context{"car": c}
	return res
}

// Update godoc
//
//	@Summary		Update a car
//	@Description	GET renders the form. POST replaces model, manufacturer and the driver set, then redirects to the detail page.
//	@Tags			Cars
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json,html
//	@Param			id		path		string				true	"Car ID"
//	@Param			body	body		taxisdk.CarRequest	true	"Car"
//	@Success		302		{object}	taxisdk.CarResponse
//	@Failure		404		{object}	taxisdk.ErrorResponse
//	@Failure		422		{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/cars/{id}/update/ [post]
func (h *CarHandler) Update(r *http.Request, caller *domain.CallerIdentity) Result {
	const tmpl = "taxi/car_form.html"
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		return failed(err)
	}

	current, err := h.Cars.Get(ctx, caller, id)
	if err != nil {
		return failed(err)
	}
	if r.Method == http.MethodGet {
		form := carForm{domain.CarInput{
			Model:          current.Model,
			ManufacturerID: current.ManufacturerID,
			DriverIDs:      current.DriverIDs,
		}}
		return h.form(r, caller, tmpl, Context{"car": current, "form": form}, nil)
	}

	in, err := bindCar(r)
	if err != nil {
		return failed(err)
	}
	c, err := h.Cars.Update(ctx, caller, id, in)
	if err != nil {
		return h.form(r, caller, tmpl, Context{"car": current, "form": carForm{in}}, err)
	}

	res := redirect(carListPath + c.ID + "/")
	res.Context = Context{"car": c}
	return res
}

// Delete godoc
//
//	@Summary		Delete a car
//	@Description	GET renders the confirmation page. POST removes the car and its driver assignments.
//	@Tags			Cars
//	@Produce		json,html
//	@Param			id	path	string	true	"Car ID"
//	@Success		302
//	@Failure		404	{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/cars/{id}/delete/ [post]
func (h *CarHandler) Delete(r *http.Request, caller *domain.CallerIdentity) Result {
	id, err := pathID(r)
	if err != nil {
		return failed(err)
	}

	if r.Method == http.MethodGet {
		c, err := h.Cars.Get(r.Context(), caller, id)
		if err != nil {
			return failed(err)
		}
		return page("taxi/car_confirm_delete.html", Context{"car": c})
	}

	if err := h.Cars.Delete(r.Context(), caller, id); err != nil {
		return failed(err)
	}
	return redirect(carListPath)
}

// ToggleAssign godoc
//
//	@Summary		Join or leave a car
//	@Description	Adds the signed-in driver to the car's drivers, or removes them when already assigned.
//	@Tags			Cars
//	@Produce		json,html
//	@Param			id	path		string	true	"Car ID"
//	@Success		302	{object}	taxisdk.AssignmentResponse
//	@Failure		404	{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/cars/{id}/toggle-assign/ [post]
func (h *CarHandler) ToggleAssign(r *http.Request, caller *domain.CallerIdentity) Result {
	id, err := pathID(r)
	if err != nil {
		return failed(err)
	}
	assigned, err := h.Cars.ToggleAssignment(r.Context(), caller, id)
	if err != nil {
		return failed(err)
	}

	res := redirect(carListPath + id + "/")
	res.Context = Context{"assigned": assigned}
	return res
}

// form renders the car form with its manufacturer and driver choices.
func (h *CarHandler) form(r *http.Request, caller *domain.CallerIdentity, tmpl string, ctx Context, formErr error) Result {
	mfrs, err := h.Manufacturers.List(r.Context(), caller, store.ListOptions{})
	if err != nil {
		return failed(err)
	}
	drivers, err := h.Drivers.List(r.Context(), caller, store.ListOptions{})
	if err != nil {
		return failed(err)
	}

	ctx["manufacturer_choices"] = mfrs.Items
	ctx["driver_choices"] = drivers.Items
	if formErr != nil {
		return invalid(tmpl, ctx, formErr)
	}
	return page(tmpl, ctx)
}

func bindCar(r *http.Request) (domain.CarInput, error) {
	var in domain.CarInput
	err := bind(r, &in, func(f url.Values) {
		in.Model = f.Get("model")
		in.ManufacturerID = f.Get("manufacturer")
		in.DriverIDs = f["drivers"]
	})
	return in, err
}
