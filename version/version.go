package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// FromBuildInfo describes the running binary for --version, e.g.
// "compdb-rename v0.3.0 (git 1a2b3c4, modified)".
func FromBuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "compdb-rename (version unavailable)"
	}

	return describe(info)
}

func describe(info *debug.BuildInfo) string {
	var b strings.Builder

	b.WriteString("compdb-rename")

	if v := info.Main.Version; v != "" && v != "(devel)" {
		b.WriteString(" " + v)
	} else {
		b.WriteString(" (devel)")
	}

	var vcs, revision string

	var modified bool

	for i := range info.Settings {
		switch info.Settings[i].Key {
		case "vcs":
			vcs = info.Settings[i].Value
		case "vcs.revision":
			revision = info.Settings[i].Value
		case "vcs.modified":
			modified = info.Settings[i].Value == "true"
		default:
			continue
		}
	}

	if revision == "" {
		return b.String()
	}

	if len(revision) > 7 {
		revision = revision[:7]
	}

	if modified {
		fmt.Fprintf(&b, " (%s %s, modified)", vcs, revision)
	} else {
		fmt.Fprintf(&b, " (%s %s)", vcs, revision)
	}

	return b.String()
}
