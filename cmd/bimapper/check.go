package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"

	"bimapper/decl"
	"bimapper/internal/common"
	"bimapper/internal/diagnostic"
	"bimapper/internal/match"
	"bimapper/meta"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Build the metadata of every declared type pair and report problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.check(cmd.OutOrStdout())
		},
	}
}

func (a *app) check(out io.Writer) error {
	diags := a.diags

	if !diags.HasErrors() {
		if err := a.checkPairs(&diags); err != nil {
			return err
		}
	}

	for _, d := range diags.All() {
		fmt.Fprintf(out, "%s: %s\n", d.Severity, d)
	}

	fmt.Fprintf(out, "%d errors, %d warnings\n", len(diags.Errors), len(diags.Warnings))

	if diags.HasErrors() {
		return errCheckFailed
	}

	return nil
}

func (a *app) checkPairs(diags *diagnostic.Diagnostics) error {
	m, err := a.mapper()
	if err != nil {
		return err
	}

	for _, p := range a.pairs(diags) {
		md, err := m.Metadata(p[0], p[1])
		if err != nil {
			diags.AddError(diagnostic.CodeReader, err.Error(), pairName(p[0], p[1]), "")
			continue
		}

		a.report(diags, md)
	}

	return nil
}

// pairs lists every pair named by a mappable declaration, each once.
func (a *app) pairs(diags *diagnostic.Diagnostics) [][2]reflect.Type {
	var out [][2]reflect.Type

	for _, t := range a.cat.Types() {
		class, err := a.source.Describe(t)
		if errors.Is(err, decl.ErrUndeclared) {
			continue
		}

		if err != nil {
			diags.AddError(diagnostic.CodeReader, err.Error(), name(t), "")
			continue
		}

		for _, ref := range class.Reciprocal {
			if ref == "" {
				continue
			}

			partner, err := a.cat.Resolve(ref)
			if err != nil {
				diags.AddError(diagnostic.CodeUnknownType, err.Error(), name(t), "mappable",
					match.Suggest(ref, a.typeNames(), 3)...)

				continue
			}

			if name(partner) < name(t) {
				out = append(out, [2]reflect.Type{partner, t})
			} else {
				out = append(out, [2]reflect.Type{t, partner})
			}
		}
	}

	return common.Dedup(out)
}

func (a *app) report(diags *diagnostic.Diagnostics, md *meta.Metadata) {
	pair := pairName(md.A, md.B)

	if !md.Valid {
		for _, x := range [][2]reflect.Type{{md.A, md.B}, {md.B, md.A}} {
			if !a.acknowledges(x[0], x[1]) {
				diags.AddError(diagnostic.CodeNotReciprocal,
					fmt.Sprintf("%s does not declare %s as mappable", name(x[0]), name(x[1])), pair, "")
			}
		}
	}

	for _, d := range md.Dropped {
		other := md.B
		if d.Type == md.B {
			other = md.A
		}

		root, _ := common.SplitRoot(d.Path)
		diags.AddWarning(diagnostic.CodeDropped, d.Reason, pair, d.Property,
			match.Suggest(root, a.propertyNames(other), 3)...)
	}

	diags.AddInfo(diagnostic.CodeReader, fmt.Sprintf("%d correspondences", len(md.Correspondences)), pair, "")
}

func (a *app) acknowledges(t, partner reflect.Type) bool {
	class, err := a.source.Describe(t)
	if err != nil {
		return false
	}

	return class.Acknowledges(partner)
}

func (a *app) propertyNames(t reflect.Type) []string {
	class, err := a.source.Describe(t)
	if err != nil {
		return nil
	}

	return class.Names()
}
