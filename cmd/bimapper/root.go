package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"bimapper/catalog"
	"bimapper/decl"
	"bimapper/internal/common"
	"bimapper/internal/config"
	"bimapper/internal/diagnostic"
	"bimapper/internal/mapping"
	"bimapper/internal/match"
	"bimapper/mapper"
	"bimapper/store"
	"bimapper/warehouse"
)

var errCheckFailed = errors.New("check failed")

// app is the state shared by all commands, set up before any of them runs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	cat    *catalog.Catalog
	source decl.Source
	// diags collects declaration file findings.
	diags diagnostic.Diagnostics
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		a          app
		configPath string
		declsPath  string
		level      string
	)

	root := &cobra.Command{
		Use:           "bimapper",
		Short:         "Inspect bidirectional mapping declarations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(configPath, declsPath, level, cmd.ErrOrStderr())
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "configuration file (YAML)")
	flags.StringVarP(&declsPath, "decls", "d", "", "declaration file taking precedence over struct tags")
	flags.StringVar(&level, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newCheckCmd(&a), newExplainCmd(&a), newExportCmd(&a))

	return root
}

func (a *app) init(configPath, declsPath, level string, stderr io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if declsPath != "" {
		cfg.Declarations = declsPath
	}

	if level != "" {
		cfg.LogLevel = level
	}

	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}

	a.cfg = cfg
	a.logger = slog.New(log.NewWithOptions(stderr, log.Options{Level: lvl, Prefix: "bimapper"}))
	a.cat = fixtures()
	a.source = decl.Tags{}

	if cfg.Declarations == "" {
		return nil
	}

	f, err := mapping.LoadFile(cfg.Declarations)
	if err != nil {
		return err
	}

	a.diags = mapping.Validate(f, a.cat)
	if a.diags.HasErrors() {
		return nil
	}

	src, err := mapping.NewSource(f, a.cat)
	if err != nil {
		return err
	}

	a.logger.Debug("declarations loaded", "file", cfg.Declarations, "types", len(src.Types()))
	a.source = decl.Chain(src, decl.Tags{})

	return nil
}

func (a *app) mapper() (*mapper.Mapper, error) {
	opts, err := a.cfg.MapperOptions()
	if err != nil {
		return nil, err
	}

	opts = append(opts,
		mapper.WithSource(a.source),
		mapper.WithCatalog(a.cat),
		mapper.WithLogger(a.logger),
	)

	return mapper.New(opts...)
}

// resolve looks a type name up in the catalogue, suggesting known names on
// failure.
func (a *app) resolve(ref string) (reflect.Type, error) {
	t, err := a.cat.Resolve(ref)
	if err == nil {
		return t, nil
	}

	if s, ok := common.First(match.Suggest(ref, a.typeNames(), 3)); ok {
		return nil, fmt.Errorf("%w (did you mean %s?)", err, s)
	}

	return nil, err
}

func (a *app) typeNames() []string {
	var names []string
	for _, t := range a.cat.Types() {
		names = append(names, catalog.IDOf(t).Short())
	}

	return names
}

// fixtures registers the sample domain.
func fixtures() *catalog.Catalog {
	return catalog.New(
		store.Product{}, store.Customer{}, store.Order{}, store.OrderItem{}, store.Shelf{},
		warehouse.Product{}, warehouse.Customer{}, warehouse.Address{}, warehouse.Order{},
		warehouse.OrderItem{}, warehouse.Bin{},
	)
}

func name(t reflect.Type) string {
	if t == nil {
		return ""
	}

	return catalog.IDOf(t).Short()
}

func pairName(a, b reflect.Type) string {
	return name(a) + " <-> " + name(b)
}
