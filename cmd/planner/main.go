package main

import (
	"os"
	"strings"

	"planner-cli/internal/cli"
	"planner-cli/internal/store"
)

func isProjectFile(s string) bool {
	_, err := store.KindOf(strings.TrimSpace(s))
	return err == nil
}

// rewriteDirectViewArgs makes `planner plan.yaml` work like `planner view plan.yaml`.
// Cobra treats the first positional token as a subcommand, so argv is rewritten
// before parsing. Persistent flags may come first.
func rewriteDirectViewArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":        true,
		"--log-level":  true,
		"--log-format": true,
		"--glyphs":     true,
		"--format":     true,
	}

	insertView := func(at int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:at]...)
		out = append(out, "view")
		return append(out, argv[at:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isProjectFile(argv[i+1]) {
				return insertView(i)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		if isProjectFile(a) {
			return insertView(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectViewArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
