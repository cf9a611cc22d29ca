package http

import (
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/service"
)

const driverListPath = "/drivers/"

type DriverHandler struct {
	Drivers  *service.DriverService
	PageSize int
}

// List godoc
//
//	@Summary		List drivers
//	@Description	Drivers ordered by username. "username" filters by a case-insensitive substring.
//	@Tags			Drivers
//	@Produce		json,html
//	@Param			username	query		string	false	"Username contains"
//	@Param			page		query		int		false	"Page number"
//	@Success		200			{object}	taxisdk.DriverListResponse
//	@Failure		401			{object}	taxisdk.ErrorResponse
//	@Failure		404			{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/drivers/ [get]
func (h *DriverHandler) List(r *http.Request, caller *domain.CallerIdentity) Result {
	opts, err := listOptions(r, "username", h.PageSize)
	if err != nil {
		return failed(err)
	}
	p, err := h.Drivers.List(r.Context(), caller, opts)
	if err != nil {
		return failed(err)
	}
	if err := pageInRange(p); err != nil {
		return failed(err)
	}
	return page("taxi/driver_list.html", listContext("driver_list", "username", opts, p))
}

// Detail godoc
//
//	@Summary	Get a driver with their cars
//	@Tags		Drivers
//	@Produce	json,html
//	@Param		id	path		string	true	"Driver ID"
//	@Success	200	{object}	taxisdk.DriverResponse
//	@Failure	404	{object}	taxisdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/drivers/{id}/ [get]
func (h *DriverHandler) Detail(r *http.Request, caller *domain.CallerIdentity) Result {
	id, err := pathID(r)
	if err != nil {
		return failed(err)
	}
	d, err := h.Drivers.Get(r.Context(), caller, id)
	if err != nil {
		return failed(err)
	}
	return page("taxi/driver_detail.html", Context{"driver": d})
}

// Create godoc
//
//	@Summary		Create a driver account
//	@Description	GET renders the form. POST creates the account and redirects to the list.
//	@Tags			Drivers
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json,html
//	@Param			body	body		taxisdk.DriverRequest	true	"Driver"
//	@Success		302		{object}	taxisdk.DriverResponse
//	@Failure		422		{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/drivers/create/ [post]
func (h *DriverHandler) Create(r *http.Request, caller *domain.CallerIdentity) Result {
	const tmpl = "taxi/driver_form.html"

	if r.Method == http.MethodGet {
		return page(tmpl, Context{"form": domain.DriverInput{}})
	}

	var in domain.DriverInput
	err := bind(r, &in, func(f url.Values) {
		in.Username = f.Get("username")
		in.Password1 = f.Get("password1")
		in.Password2 = f.Get("password2")
		in.LicenseNumber = f.Get("license_number")
		in.FirstName = f.Get("first_name")
		in.LastName = f.Get("last_name")
	})
	if err != nil {
		return failed(err)
	}

	d, err := h.Drivers.Create(r.Context(), caller, in)
	if err != nil {
		in.Password1, in.Password2 = "", ""
		return invalid(tmpl, Context{"form": in}, err)
	}

	res := redirect(driverListPath)
	res.Context = Context{"driver": d}
	return res
}

// Update godoc
//
//	@Summary		Update a driver's license number
//	@Description	GET renders the form. POST replaces the license number and redirects to the detail page.
//	@Tags			Drivers
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json,html
//	@Param			id		path		string					true	"Driver ID"
//	@Param			body	body		taxisdk.LicenseRequest	true	"License"
//	@Success		302		{object}	taxisdk.DriverResponse
//	@Failure		404		{object}	taxisdk.ErrorResponse
//	@Failure		422		{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/drivers/{id}/update/ [post]
func (h *DriverHandler) Update(r *http.Request, caller *domain.CallerIdentity) Result {
	const tmpl = "taxi/driver_license_form.html"
	id, err := pathID(r)
	if err != nil {
		return failed(err)
	}

	current, err := h.Drivers.Get(r.Context(), caller, id)
	if err != nil {
		return failed(err)
	}
	if r.Method == http.MethodGet {
		return page(tmpl, Context{
			"driver": current,
			"form":   domain.LicenseInput{LicenseNumber: current.LicenseNumber},
		})
	}

	var in domain.LicenseInput
	err = bind(r, &in, func(f url.Values) { in.LicenseNumber = f.Get("license_number") })
	if err != nil {
		return failed(err)
	}

	d, err := h.Drivers.UpdateLicense(r.Context(), caller, id, in)
	if err != nil {
		return invalid(tmpl, Context{"driver": current, "form": in}, err)
	}

	res := redirect(driverListPath + d.ID + "/")
	res.Context = Context{"driver": d}
	return res
}

// Profile godoc
//
//	@Summary		Update a driver's name
//	@Description	GET renders the form. POST replaces first and last name and redirects to the detail page.
//	@Tags			Drivers
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json,html
//	@Param			id		path		string					true	"Driver ID"
//	@Param			body	body		taxisdk.ProfileRequest	true	"Profile"
//	@Success		302		{object}	taxisdk.DriverResponse
//	@Failure		404		{object}	taxisdk.ErrorResponse
//	@Failure		422		{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/drivers/{id}/profile/ [post]
func (h *DriverHandler) Profile(r *http.Request, caller *domain.CallerIdentity) Result {
	const tmpl = "taxi/driver_profile_form.html"
	id, err := pathID(r)
	if err != nil {
		return failed(err)
	}

	current, err := h.Drivers.Get(r.Context(), caller, id)
	if err != nil {
		return failed(err)
	}
	if r.Method == http.MethodGet {
		return page(tmpl, Context{
			"driver": current,
			"form":   domain.ProfileInput{FirstName: current.FirstName, LastName: current.LastName},
		})
	}

	var in domain.ProfileInput
	err = bind(r, &in, func(f url.Values) {
		in.FirstName = f.Get("first_name")
		in.LastName = f.Get("last_name")
	})
	if err != nil {
		return failed(err)
	}

	d, err := h.Drivers.UpdateProfile(r.Context(), caller, id, in)
	if err != nil {
		return invalid(tmpl, Context{"driver": current, "form": in}, err)
	}

	res := redirect(driverListPath + d.ID + "/")
	res.Context = Context{"driver": d}
	return res
}

// Delete godoc
//
//	@Summary		Delete a driver account
//	@Description	GET renders the confirmation page. POST removes the driver and their car assignments.
//	@Tags			Drivers
//	@Produce		json,html
//	@Param			id	path	string	true	"Driver ID"
//	@Success		302
//	@Failure		404	{object}	taxisdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/drivers/{id}/delete/ [post]
func (h *DriverHandler) Delete(r *http.Request, caller *domain.CallerIdentity) Result {
	id, err := pathID(r)
	if err != nil {
		return failed(err)
	}

	if r.Method == http.MethodGet {
		d, err := h.Drivers.Get(r.Context(), caller, id)
		if err != nil {
			return failed(err)
		}
		return page("taxi/driver_confirm_delete.html", Context{"driver": d})
	}

	if err := h.Drivers.Delete(r.Context(), caller, id); err != nil {
		return failed(err)
	}
	return redirect(driverListPath)
}
