package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"planner-cli/internal/model"
)

// FileKind is the on-disk encoding of a project, chosen by extension.
type FileKind string

const (
	FileYAML   FileKind = "yaml"
	FileJSON   FileKind = "json"
	FileSQLite FileKind = "sqlite"
)

// UnsupportedFileError is returned for project paths with an unknown extension.
type UnsupportedFileError struct {
	Path string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported project file %q (want .yaml, .yml, .json or .db)", e.Path)
}

func KindOf(path string) (FileKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FileYAML, nil
	case ".json":
		return FileJSON, nil
	case ".db", ".sqlite":
		return FileSQLite, nil
	default:
		return "", &UnsupportedFileError{Path: path}
	}
}

// LoadProject reads a project document. Unknown fields are errors so typos in
// hand-written files do not silently drop data.
func LoadProject(ctx context.Context, path string) (model.Project, error) {
	var doc model.Project
	kind, err := KindOf(path)
	if err != nil {
		return doc, err
	}
	switch kind {
	case FileSQLite:
		doc, err = loadProjectSQLite(ctx, path)
		if err != nil {
			return doc, fmt.Errorf("load %s: %w", path, err)
		}
	default:
		b, err := os.ReadFile(path)
		if err != nil {
			return doc, err
		}
		if kind == FileYAML {
			dec := yaml.NewDecoder(bytes.NewReader(b))
			dec.KnownFields(true)
			if err := dec.Decode(&doc); err != nil {
				return doc, fmt.Errorf("parse %s: %w", path, err)
			}
		} else {
			dec := json.NewDecoder(bytes.NewReader(b))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&doc); err != nil {
				return doc, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	if strings.TrimSpace(doc.Name) == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// SaveProject writes doc in the encoding implied by path.
func SaveProject(ctx context.Context, path string, doc model.Project) error {
	kind, err := KindOf(path)
	if err != nil {
		return err
	}
	var b []byte
	switch kind {
	case FileSQLite:
		return saveProjectSQLite(ctx, path, doc)
	case FileYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		b = buf.Bytes()
	default:
		b, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		b = append(b, '\n')
	}
	return atomicWriteFile(path, b, 0o644)
}
