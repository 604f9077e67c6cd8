package main

import (
	"clinic-access-api/internal/chart"
	"clinic-access-api/internal/service"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newStatesCmd(opts *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "states",
		Short: "Clinic counts per state joined with postal codes and gestational policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strict") {
				strict = opts.cfg.StrictJoin
			}

			repo, err := opts.fileRepository()
			if err != nil {
				return err
			}

			rows, report, err := service.NewStateService(repo, repo, strict, log.Logger).StateTable(cmd.Context())
			if err != nil {
				return err
			}

			if opts.chart {
				return opts.write(cmd.OutOrStdout(), chart.StateChoropleth(rows))
			}
			return opts.write(cmd.OutOrStdout(), map[string]any{"rows": rows, "report": report})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when a state does not match in every table (defaults to STRICT_JOIN)")
	return cmd
}
