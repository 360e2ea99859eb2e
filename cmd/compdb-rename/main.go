package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/kxue43/compdb-rename/compdb"
	"github.com/kxue43/compdb-rename/conf"
	"github.com/kxue43/compdb-rename/logging"
	"github.com/kxue43/compdb-rename/rename"
	"github.com/kxue43/compdb-rename/report"
	"github.com/kxue43/compdb-rename/version"
)

type CLI struct {
	logger *logrus.Logger
	stdout io.Writer

	Path     string           `arg:"" optional:"" name:"path" help:"Path to the compilation database. Takes precedence over --manifest."`
	Manifest string           `name:"manifest" short:"m" env:"COMPDB_RENAME_MANIFEST" default:"${default_manifest}" help:"Path to the compilation database."`
	Root     string           `name:"root" env:"COMPDB_RENAME_ROOT" help:"Directory that manifest paths are resolved against. Defaults to the current working directory."`
	From     string           `name:"from" env:"COMPDB_RENAME_FROM" default:"${default_from}" help:"Suffix to replace."`
	To       string           `name:"to" env:"COMPDB_RENAME_TO" default:"${default_to}" help:"Replacement suffix. Appended as-is to names without the --from suffix."`
	Exclude  []string         `name:"exclude" sep:"none" placeholder:"PATTERN" help:"Leave resolved paths matching this doublestar pattern alone. Repeatable."`
	Strict   bool             `name:"strict" help:"Rename nothing if any manifest entry is invalid."`
	FailFast bool             `name:"fail-fast" help:"Stop at the first rename failure."`
	DryRun   bool             `name:"dry-run" short:"n" help:"Report what would be renamed without touching the filesystem."`
	Report   report.Format    `name:"report" default:"text" help:"Report format: text, json or yaml."`
	LogLevel string           `name:"log-level" env:"COMPDB_RENAME_LOG_LEVEL" default:"info" enum:"trace,debug,info,warn,error" help:"Diagnostics level: ${enum}."`
	LogJSON  bool             `name:"log-json" help:"Write diagnostics as JSON lines."`
	Dump     bool             `name:"dump" help:"Dump the decoded manifest to stderr before renaming."`
	Config   kong.ConfigFlag  `name:"config" placeholder:"FILE" help:"Load flag values from a TOML or YAML file."`
	Version  kong.VersionFlag `name:"version" help:"Show version information and quit."`
}

func options(configPaths ...string) []kong.Option {
	return []kong.Option{
		kong.Name("compdb-rename"),
		kong.Description("Rename the source files listed in a compilation database from one suffix to another."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Configuration(conf.Loader, configPaths...),
		kong.Vars{
			"default_manifest": rename.DefaultManifest,
			"default_from":     rename.DefaultFrom,
			"default_to":       rename.DefaultTo,
			"version":          version.FromBuildInfo(),
		},
	}
}

func (c *CLI) AfterApply() (err error) {
	if c.Root == "" {
		c.Root, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current working directory: %w", err)
		}
	}

	if c.logger == nil {
		c.logger, err = logging.New(os.Stderr, c.LogLevel, c.LogJSON)
		if err != nil {
			return err
		}
	}

	if c.stdout == nil {
		c.stdout = os.Stdout
	}

	return nil
}

func (c *CLI) config() rename.Config {
	cfg := rename.Config{
		Manifest: c.Manifest,
		Root:     c.Root,
		From:     c.From,
		To:       c.To,
		Exclude:  c.Exclude,
		Strict:   c.Strict,
		FailFast: c.FailFast,
		DryRun:   c.DryRun,
	}

	if c.Path != "" {
		cfg.Manifest = c.Path
	}

	return cfg
}

// Run returns nil when every entry was renamed, skipped or excluded.
func (c *CLI) Run() error {
	cfg := c.config()

	if err := cfg.Validate(); err != nil {
		return err
	}

	m, err := compdb.Load(cfg.Manifest, cfg.Strict)
	if err != nil {
		return err
	}

	if invalid := m.Invalid(); len(invalid) > 0 {
		c.logger.Warnf("%d of %d manifest entries are invalid", len(invalid), len(m))
	}

	if c.Dump {
		spew.Fdump(c.logger.Out, m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := rename.New(cfg, c.logger).Run(ctx, m)

	if err1 := report.Write(c.stdout, c.Report, result); err1 != nil {
		return errors.Join(err, err1)
	}

	if err != nil {
		return err
	}

	return result.Err()
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli, options(conf.DefaultPaths...)...)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
