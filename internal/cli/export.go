package cli

import (
	"fmt"
	"os"

	"pastfool/internal/app"
	"pastfool/internal/config"

	"github.com/spf13/cobra"
)

// NewExportCmd writes the bundled question bank as JSON.
func NewExportCmd(configPath *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the question bank as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			admin := newAdmin(cfg)
			if out == "" {
				out = admin.Filename()
			}
			if err := exportTo(admin, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	return cmd
}

// NewImportCmd accepts a question file. Imports do not change the bank.
func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import questions (not supported yet)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			var text string
			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				text = string(data)
			}
			msg, err := newAdmin(cfg).ImportDocument(text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func exportTo(admin *app.Admin, path string) error {
	doc, err := admin.ExportDocument()
	if err != nil {
		return err
	}
	return os.WriteFile(path, doc, 0o644)
}
