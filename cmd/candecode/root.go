package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	outputFormat string
	noColor      bool
}

func newRootCmd(cfg envConfig) *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "candecode",
		Short: "Decode CAN 2.0A/2.0B and J1939 identifiers and frames",
		Long: `candecode decodes 11bit and 29bit CAN identifiers into their fields (priority, PGN, addresses) and
prints frames read from candump logs, serial loggers or raw SocketCAN frame dumps.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.outputFormat {
			case "json", "yaml", "text", "hex":
			default:
				return fmt.Errorf("unknown output format type given: %v", opts.outputFormat)
			}
			if opts.noColor {
				color.NoColor = true
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.outputFormat, "output-format", "o", cfg.OutputFormat, "in which format decoded identifiers and frames are printed out (json, yaml, text, hex)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", cfg.NoColor, "disable colored text output")

	rootCmd.AddCommand(newIDCmd(opts))
	rootCmd.AddCommand(newDumpCmd(opts, cfg))
	rootCmd.AddCommand(newRequestCmd(opts))
	return rootCmd
}
