package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"bimapper/meta"
)

func newExplainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <source-type> <target-type>",
		Short: "Print the correspondences used to map one type onto another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.explain(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func (a *app) explain(out io.Writer, srcRef, dstRef string) error {
	if err := a.diags.Err(); err != nil {
		return fmt.Errorf("invalid declarations: %w", err)
	}

	src, err := a.resolve(srcRef)
	if err != nil {
		return err
	}

	dst, err := a.resolve(dstRef)
	if err != nil {
		return err
	}

	m, err := a.mapper()
	if err != nil {
		return err
	}

	md, err := m.Metadata(src, dst)
	if err != nil {
		return err
	}

	state := "reciprocal"
	if !md.Valid {
		state = "not reciprocal, mapping fails"
	}

	fmt.Fprintf(out, "%s -> %s (%s)\n", name(src), name(dst), state)

	cs, _ := md.Oriented(src, dst)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SOURCE", "TARGET", "ELEMENTS")

	for _, c := range cs {
		t.Row(c.SourcePath, c.TargetPath, elemName(c))
	}

	fmt.Fprintln(out, t.String())

	for _, d := range md.Dropped {
		fmt.Fprintf(out, "dropped: %s\n", d)
	}

	return nil
}

// elemName renders the element type a collection maps into, "?" when unknown.
func elemName(c meta.Correspondence) string {
	switch {
	case !c.IsArray:
		return ""
	case c.TargetElem == nil:
		return "?"
	}

	return name(c.TargetElem)
}
