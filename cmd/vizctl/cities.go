package main

import (
	"clinic-access-api/internal/chart"
	"clinic-access-api/internal/service"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCitiesCmd(opts *rootOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "cities",
		Short: "Cities with the most clinics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("top") {
				top = opts.cfg.CityTopN
			}

			repo, err := opts.fileRepository()
			if err != nil {
				return err
			}

			counts, err := service.NewCityService(repo, log.Logger).TopCities(cmd.Context(), top)
			if err != nil {
				return err
			}

			if opts.chart {
				return opts.write(cmd.OutOrStdout(), chart.CityBar(counts))
			}
			return opts.write(cmd.OutOrStdout(), counts)
		},
	}

	cmd.Flags().IntVar(&top, "top", 20, "number of cities (defaults to CITY_TOP_N)")
	return cmd
}
