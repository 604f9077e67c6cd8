package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"clinic-access-api/internal/config"
	"clinic-access-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configDir string
	locations string
	policies  string
	abbrevs   string
	out       string
	chart     bool
	cfg       config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "vizctl",
		Short:         "Build the clinic tables and charts from the dataset files",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return err
			}
			if opts.locations != "" {
				cfg.LocationsFile = opts.locations
			}
			if opts.policies != "" {
				cfg.GestationalFile = opts.policies
			}
			if opts.abbrevs != "" {
				cfg.StateAbbrevsFile = opts.abbrevs
			}
			zerolog.SetGlobalLevel(cfg.Level())
			opts.cfg = cfg
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configDir, "config", "configs", "directory holding app.env")
	flags.StringVar(&opts.locations, "locations", "", "location dataset (overrides LOCATIONS_FILE)")
	flags.StringVar(&opts.policies, "policies", "", "gestational policy dataset (overrides GESTATIONAL_FILE)")
	flags.StringVar(&opts.abbrevs, "abbrevs", "", "state abbreviation CSV (overrides STATE_ABBREVS_FILE)")
	flags.StringVarP(&opts.out, "out", "o", "", "write the JSON here instead of stdout")
	flags.BoolVar(&opts.chart, "chart", false, "emit the Plotly figure instead of the table")

	rootCmd.AddCommand(newCitiesCmd(opts), newStatesCmd(opts))
	return rootCmd
}

func (o *rootOptions) fileRepository() (*repository.FileRepository, error) {
	return repository.NewFileRepository(repository.FilePaths{
		Locations:    o.cfg.LocationsFile,
		Gestational:  o.cfg.GestationalFile,
		StateAbbrevs: o.cfg.StateAbbrevsFile,
	}, o.cfg.FileEncoding)
}

// write encodes v as indented JSON to the --out file or to w
func (o *rootOptions) write(w io.Writer, v any) error {
	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return fmt.Errorf("vizctl: failed to create output: %w", err)
		}
		defer f.Close()
		w = f
		log.Info().Str("path", o.out).Msg("writing output")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
