/*
Package taxisdk provides a client SDK for the taxi service JSON API.

# Overview

The service serves HTML to browsers and JSON to clients that send
"Accept: application/json". This package speaks the JSON side. It is
organised around two types:

  - Client: unauthenticated operations (health checks, signing in)
  - Session: operations on behalf of a signed-in driver

Create a Client and sign in to get a Session:

	client := taxisdk.NewClient("http://localhost:8080")

	session, err := client.Login(ctx, "admin", "secret")
	if err != nil {
		return err
	}

	// Create a manufacturer, then a car made by it
	m, err := session.CreateManufacturer(ctx, taxisdk.ManufacturerRequest{Name: "Toyota", Country: "Japan"})
	car, err := session.CreateCar(ctx, taxisdk.CarRequest{Model: "Corolla", Manufacturer: m.ID})

	// Search cars by model
	page, err := session.ListCars(ctx, taxisdk.ListOptions{Search: "cor"})

# Writes and redirects

Successful writes answer 302 Found, the same status a browser sees. The
client never follows redirects: a 302 is the success signal and its body
carries the written record.

# Errors

Non-success responses are returned as *APIError. Validation failures carry
per-field messages:

	_, err := session.CreateCar(ctx, taxisdk.CarRequest{})
	var apiErr *taxisdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == taxisdk.ErrorCodeValidation {
		fmt.Println(apiErr.Fields["model"])
	}
*/
package taxisdk
