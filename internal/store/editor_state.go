package store

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"planner-cli/internal/editor"
)

const editorStateDir = "state"

//go:embed schema/editor_state.schema.json
var editorStateSchemaJSON []byte

var editorStateSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("editor_state.schema.json", bytes.NewReader(editorStateSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("editor_state.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// StateError reports an editor state document that does not match the schema.
type StateError struct {
	Path    string
	Message string
}

func (e *StateError) Error() string {
	if e.Path == "" {
		return "editor state: " + e.Message
	}
	return fmt.Sprintf("editor state: %s: %s", e.Path, e.Message)
}

// EditorStatePath names the state file of a project. Projects are keyed by the hash
// of their absolute path so moving a file starts from fresh state.
func (s Store) EditorStatePath(projectPath string) (string, error) {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(s.Dir, editorStateDir, hex.EncodeToString(sum[:8])+".json"), nil
}

// LoadEditorState returns nil without an error when no state was saved yet.
func (s Store) LoadEditorState(projectPath string) (*editor.State, error) {
	path, err := s.EditorStatePath(projectPath)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	st, err := DecodeEditorState(b)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s Store) SaveEditorState(projectPath string, st editor.State) error {
	path, err := s.EditorStatePath(projectPath)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if _, err := DecodeEditorState(b); err != nil {
		return err
	}
	return atomicWriteFile(path, b, 0o644)
}

// ResetEditorState removes saved state; a missing file is not an error.
func (s Store) ResetEditorState(projectPath string) error {
	path, err := s.EditorStatePath(projectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// DecodeEditorState validates b against the embedded schema before decoding it.
// Key and format names are checked later by the editor itself.
func DecodeEditorState(b []byte) (editor.State, error) {
	var st editor.State
	schema, err := editorStateSchema()
	if err != nil {
		return st, err
	}
	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return st, &StateError{Message: err.Error()}
	}
	if err := schema.Validate(doc); err != nil {
		return st, schemaError(err)
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return st, &StateError{Message: err.Error()}
	}
	return st, nil
}

func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &StateError{Message: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &StateError{Path: ve.InstanceLocation, Message: ve.Message}
}
