package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	"github.com/reforge-mod/sdkgen/config"
	"github.com/reforge-mod/sdkgen/generator"
	"github.com/reforge-mod/sdkgen/model"
	"github.com/reforge-mod/sdkgen/parser"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "sdkgen: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sdkgen",
		Usage: "generate address-bound C++ bindings from a symbol dump",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dump", Usage: "symbol dump file", Required: true},
			&cli.StringFlag{Name: "structs", Usage: "struct-layout dump file"},
			&cli.StringFlag{Name: "second-dump", Usage: "symbol dump of a second build, cross-referenced into the first"},
			&cli.StringFlag{Name: "config", Usage: "YAML config file"},
			&cli.StringFlag{Name: "output", Value: ".", Usage: "output directory for generated sources"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	ctx := setupLogging(c.Bool("verbose"))

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	blacklist := parser.NewBlacklist(cfg.Blacklist)

	primary, err := loadModel(ctx, c.String("dump"), blacklist, cfg.Whitelist)
	if err != nil {
		return err
	}

	if structsPath := c.String("structs"); structsPath != "" {
		structs, err := loadStructs(ctx, structsPath)
		if err != nil {
			return err
		}
		if err := model.MergeStructs(ctx, primary, structs); err != nil {
			return err
		}
	}

	if secondPath := c.String("second-dump"); secondPath != "" {
		secondary, err := loadModel(ctx, secondPath, blacklist, cfg.Whitelist)
		if err != nil {
			return err
		}
		model.CrossReference(ctx, primary, secondary)
	}

	model.ResolveDependencies(ctx, primary)

	gen := generator.New(cfg.Namespace, cfg.GuardPrefix, cfg.Platforms, primary)
	files, err := gen.Generate()
	if err != nil {
		return err
	}

	outputDir := c.String("output")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Errorf("creating output directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(outputDir, name)
		if err := os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
			return errors.Errorf("writing %s: %w", name, err)
		}
		slog.DebugContext(ctx, "wrote file", "path", path)
	}

	color.Green("generated %d files for %d classes in %s", len(files), primary.Len(), outputDir)
	return nil
}

func setupLogging(verbose bool) context.Context {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
	})
	logger := slog.New(slogctx.NewHandler(handler, &slogctx.HandlerOptions{}))
	slog.SetDefault(logger)
	return slogctx.NewCtx(context.Background(), logger)
}

func loadModel(ctx context.Context, path string, blacklist *parser.Blacklist, whitelist []string) (*model.Model, error) {
	ctx = slogctx.With(ctx, slog.String("dump", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening symbol dump: %w", err)
	}
	defer f.Close()

	records, err := parser.Lex(ctx, f)
	if err != nil {
		return nil, err
	}
	records = blacklist.Filter(ctx, records)

	m := model.BuildModel(ctx, records, whitelist)
	slog.InfoContext(ctx, "built model", "symbols", len(records), "classes", m.Len())
	return m, nil
}

func loadStructs(ctx context.Context, path string) ([]parser.StructRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening struct dump: %w", err)
	}
	defer f.Close()

	structs, err := parser.ParseStructs(ctx, f)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "parsed struct layouts", "structs", len(structs), "dump", path)
	return structs, nil
}
