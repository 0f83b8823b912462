package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bimapper/internal/mapping"
)

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the effective declarations of the sample types as a declaration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.export(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write, standard output when empty")

	return cmd
}

func (a *app) export(w io.Writer, path string) error {
	if err := a.diags.Err(); err != nil {
		return fmt.Errorf("invalid declarations: %w", err)
	}

	f, err := mapping.Export(a.source, a.cat.Types())
	if err != nil {
		return err
	}

	if path != "" {
		a.logger.Info("declarations exported", "file", path, "types", len(f.Classes))
		return mapping.WriteFile(f, path)
	}

	data, err := mapping.Marshal(f)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
