package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/taxi/internal/taxi/service"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
)

func migrateCmd(envFiles *[]string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Opening the store migrates it.
			err := withStore(cmd.Context(), *envFiles, func(context.Context, store.Store) error { return nil })
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
}

func createDriverCmd(envFiles *[]string) *cobra.Command {
	var (
		username string
		password string
		attrs    service.AccountAttributes
	)

	c := &cobra.Command{
		Use:   "createdriver",
		Short: "Create a driver account that can sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("TAXI_DRIVER_PASSWORD")
			}

			return withStore(cmd.Context(), *envFiles, func(ctx context.Context, db store.Store) error {
				sessions := &service.SessionService{Store: db}
				d, err := sessions.CreateAccount(ctx, username, password, attrs)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Driver %q created (%s).\n", d.Username, d.ID)
				return nil
			})
		},
	}

	c.Flags().StringVarP(&username, "username", "u", "", "login name (required)")
	c.Flags().StringVar(&password, "password", "", "password (default: $TAXI_DRIVER_PASSWORD)")
	c.Flags().StringVar(&attrs.LicenseNumber, "license", "", "license number, three capitals then five digits")
	c.Flags().StringVar(&attrs.FirstName, "first-name", "", "first name")
	c.Flags().StringVar(&attrs.LastName, "last-name", "", "last name")

	_ = c.MarkFlagRequired("username")
	return c
}

func loadDataCmd(envFiles *[]string) *cobra.Command {
	return &cobra.Command{
		Use:   "loaddata <fixture.yaml>",
		Short: "Insert manufacturers, drivers and cars from a YAML fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readFixture(args[0])
			if err != nil {
				return err
			}

			return withStore(cmd.Context(), *envFiles, func(ctx context.Context, db store.Store) error {
				sum, err := (&service.FixtureService{Store: db}).Load(ctx, f)
				if err != nil {
					return err
				}
				n := sum.Manufacturers + sum.Drivers + sum.Cars
				fmt.Fprintf(cmd.OutOrStdout(), "Installed %d object(s) from %s.\n", n, args[0])
				return nil
			})
		},
	}
}

// readFixture decodes path strictly: unknown keys are errors.
func readFixture(path string) (service.Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return service.Fixture{}, fmt.Errorf("read fixture: %w", err)
	}

	var f service.Fixture
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return service.Fixture{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return f, nil
}
