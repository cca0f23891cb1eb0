package cmd

import (
	"errors"
	"fmt"

	"github.com/ariebrainware/basis-data-dental/config"
	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/service"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/spf13/cobra"
)

// starterCatalog is offered to new clinics so treatments can be priced on day one.
var starterCatalog = []model.CatalogRequest{
	{Name: "Consultation", Category: "diagnostic", DefaultCost: 40, DefaultDuration: 30},
	{Name: "Cleaning", Category: "preventive", DefaultCost: 60, DefaultDuration: 45},
	{Name: "Sealant", Category: "preventive", DefaultCost: 35, DefaultDuration: 20},
	{Name: "Composite filling", Category: "restorative", DefaultCost: 80, DefaultDuration: 45},
	{Name: "Root canal", Category: "endodontics", DefaultCost: 350, DefaultDuration: 90},
	{Name: "Extraction", Category: "oral_surgery", DefaultCost: 120, DefaultDuration: 45},
	{Name: "Crown", Category: "prosthodontics", DefaultCost: 600, DefaultDuration: 60},
	{Name: "Implant", Category: "implantology", DefaultCost: 1200, DefaultDuration: 90},
}

func newSeedCommand() *cobra.Command {
	var clinicID string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed roles, and the starter treatment catalog of a clinic",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := util.InitLogger(config.LoadConfig())
			db, err := config.ConnectDatabase()
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if err := model.SeedRoles(db); err != nil {
				return err
			}
			if clinicID == "" {
				logger.Info().Msg("roles seeded")
				return nil
			}

			scope, err := gateway.NewScope(clinicID, "system", gateway.UnknownIP)
			if err != nil {
				return err
			}
			svc := service.New(service.Deps{DB: db, Logger: &logger})
			ctx := cmd.Context()
			if _, err := svc.Clinics.Get(ctx, scope); err != nil {
				if errors.Is(err, gateway.ErrNotFound) {
					return fmt.Errorf("clinic %s not found", clinicID)
				}
				return err
			}

			existing, err := svc.Catalog.List(ctx, scope, gateway.PageRequest{Page: 1, PageSize: 1}, "")
			if err != nil {
				return err
			}
			if existing.Total > 0 {
				logger.Info().Int64("items", existing.Total).Msg("catalog already has items, skipping")
				return nil
			}
			for _, item := range starterCatalog {
				if _, err := svc.Catalog.Create(ctx, scope, item); err != nil {
					return fmt.Errorf("seed %s: %w", item.Name, err)
				}
			}
			logger.Info().Int("items", len(starterCatalog)).Str("clinic", clinicID).Msg("catalog seeded")
			return nil
		},
	}

	cmd.Flags().StringVar(&clinicID, "clinic", "", "clinic id whose catalog is seeded")
	return cmd
}
