// Package publish exports a project as a markdown document.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"planner-cli/internal/project"
)

type WriteOptions struct {
	IncludeComments bool
	Overwrite       bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteProject writes <toDir>/<slug of the project name>.md.
func WriteProject(p *project.Project, toDir string, opt WriteOptions) (WriteResult, error) {
	if p == nil {
		return WriteResult{}, errors.New("missing project")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	md := RenderProjectMarkdown(p, RenderOptions{IncludeComments: opt.IncludeComments})
	path := filepath.Join(toDir, slug(p.Name())+".md")
	if err := writeFile(path, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}}, nil
}

// slug keeps letters and digits, lowercased, joined by single dashes.
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "project"
	}
	return b.String()
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
