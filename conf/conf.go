// Package conf provides kong configuration loaders for TOML and YAML files.
//
// A flag is looked up by its name with dashes ("dry-run"), with underscores ("dry_run"), and in
// both spellings under a table named after the application, e.g.
//
//	[compdb-rename]
//	from = ".cc"
//	exclude = ["third_party/**"]
package conf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// Table is the optional table that scopes this application's keys in a shared config file.
const Table = "compdb-rename"

// DefaultPaths are tried in order; missing files are ignored by kong.
var DefaultPaths = []string{
	".compdb-rename.toml",
	".compdb-rename.yaml",
	"~/.config/compdb-rename/config.toml",
	"~/.config/compdb-rename/config.yaml",
}

// TOML is a [kong.ConfigurationLoader].
func TOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}

	if _, err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("failed to decode TOML configuration: %w", err)
	}

	return newResolver(values), nil
}

// YAML is a [kong.ConfigurationLoader].
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}

	// an empty document leaves values untouched
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML configuration: %w", err)
	}

	return newResolver(values), nil
}

// Loader tries TOML first and falls back to YAML, so that one loader serves both the default
// paths and the --config flag.
func Loader(r io.Reader) (kong.Resolver, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	resolver, errTOML := TOML(bytes.NewReader(contents))
	if errTOML == nil {
		return resolver, nil
	}

	resolver, errYAML := YAML(bytes.NewReader(contents))
	if errYAML == nil {
		return resolver, nil
	}

	return nil, errors.Join(errTOML, errYAML)
}

func newResolver(values map[string]any) kong.Resolver {
	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		// kong has already applied a set environment variable; it takes precedence over the file
		for _, env := range flag.Tag.Envs {
			if _, set := os.LookupEnv(env); set {
				return nil, nil
			}
		}

		raw, ok := lookup(values, flag.Name)
		if !ok {
			if table, isTable := values[Table].(map[string]any); isTable {
				raw, ok = lookup(table, flag.Name)
			}
		}

		if !ok {
			return nil, nil
		}

		return toValue(flag.Name, raw)
	}

	return f
}

func lookup(values map[string]any, name string) (any, bool) {
	if raw, ok := values[name]; ok {
		return raw, true
	}

	raw, ok := values[strings.ReplaceAll(name, "-", "_")]

	return raw, ok
}

// toValue flattens decoded scalars to the string form kong parses from the command line.
// Lists become []any, which kong decodes item by item whatever the flag's separator.
func toValue(name string, raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return nil, fmt.Errorf("configuration key %q is a table, expected a value", name)
	case []any:
		items := make([]any, 0, len(v))

		for _, item := range v {
			s, err := toValue(name, item)
			if err != nil {
				return nil, err
			}

			items = append(items, s)
		}

		return items, nil
	default:
		return fmt.Sprint(v), nil
	}
}
