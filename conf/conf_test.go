package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCLI struct {
	Config   kong.ConfigFlag `name:"config"`
	From     string          `name:"from" default:".c"`
	To       string          `name:"to" env:"COMPDB_RENAME_TO" default:".cpp"`
	LogLevel string          `name:"log-level" default:"info"`
	Exclude  []string        `name:"exclude" sep:"none"`
	DryRun   bool            `name:"dry-run"`
}

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))

	return path
}

func parse(t *testing.T, loader kong.ConfigurationLoader, paths []string, args ...string) testCLI {
	t.Helper()

	var cli testCLI

	parser, err := kong.New(&cli, kong.Name("compdb-rename"), kong.Configuration(loader, paths...))
	require.NoError(t, err)

	_, err = parser.Parse(args)
	require.NoError(t, err)

	return cli
}

func TestTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
from = ".cc"
dry_run = true
exclude = ["third_party/**", "{a,b}/*.c"]
`)

	cli := parse(t, TOML, []string{path})

	assert.Equal(t, ".cc", cli.From)
	assert.Equal(t, ".cpp", cli.To)
	assert.True(t, cli.DryRun)
	assert.Equal(t, []string{"third_party/**", "{a,b}/*.c"}, cli.Exclude)
}

func TestYAMLTable(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
compdb-rename:
  to: .cxx
  log-level: debug
`)

	cli := parse(t, YAML, []string{path})

	assert.Equal(t, ".c", cli.From)
	assert.Equal(t, ".cxx", cli.To)
	assert.Equal(t, "debug", cli.LogLevel)
}

func TestFlagsOverrideConfiguration(t *testing.T) {
	path := writeConfig(t, "config.toml", `from = ".cc"`)

	cli := parse(t, Loader, []string{path}, "--from", ".h")

	assert.Equal(t, ".h", cli.From)
}

func TestEnvironmentOverridesConfiguration(t *testing.T) {
	t.Setenv("COMPDB_RENAME_TO", ".cc")

	path := writeConfig(t, "config.toml", "from = \".h\"\nto = \".cxx\"\n")

	cli := parse(t, Loader, []string{path})

	assert.Equal(t, ".cc", cli.To)
	assert.Equal(t, ".h", cli.From)

	cli = parse(t, Loader, []string{path}, "--to", ".hpp")

	assert.Equal(t, ".hpp", cli.To)
}

func TestLoaderDetectsFormat(t *testing.T) {
	var tests = []struct {
		name     string
		contents string
	}{
		{name: "config.toml", contents: "to = \".cxx\"\n"},
		{name: "config.yaml", contents: "to: .cxx\n"},
		{name: "config", contents: "[compdb-rename]\nto = \".cxx\"\n"},
	}

	for _, test := range tests {
		cli := parse(t, Loader, []string{writeConfig(t, test.name, test.contents)})

		assert.Equal(t, ".cxx", cli.To, test.name)
	}
}

func TestConfigFlag(t *testing.T) {
	path := writeConfig(t, "custom.yaml", "dry-run: true\nexclude:\n  - vendor/**\n")

	cli := parse(t, Loader, nil, "--config", path)

	assert.True(t, cli.DryRun)
	assert.Equal(t, []string{"vendor/**"}, cli.Exclude)
}

func TestLoaderRejectsGarbage(t *testing.T) {
	_, err := Loader(strings.NewReader("{from: [.c"))

	assert.Error(t, err)
}

func TestMissingDefaultPathsAreIgnored(t *testing.T) {
	cli := parse(t, Loader, []string{filepath.Join(t.TempDir(), "absent.toml")})

	assert.Equal(t, ".c", cli.From)
}
