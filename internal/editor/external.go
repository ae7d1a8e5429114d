// Package editor shells out to the user's $EDITOR for long-form edits.
// The note content round-trips through a temp file; the caller feeds the
// result back through the edit session like any other content change.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

func EditorCommand() string {
	if v := os.Getenv("EDITOR"); v != "" {
		return v
	}
	return "vi"
}

// WriteTemp writes content to a fresh temp file and returns its path.
// The caller removes the file after reading the result back.
func WriteTemp(content string) (string, error) {
	f, err := os.CreateTemp("", "notefied-*.md")
	if err != nil {
		return "", fmt.Errorf("create temp note: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp note %q: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp note %q: %w", f.Name(), err)
	}
	return f.Name(), nil
}

func EditCmd(path string) (*exec.Cmd, error) {
	editor := strings.TrimSpace(EditorCommand())
	if editor == "" {
		return nil, errors.New("EDITOR is empty")
	}

	parts := strings.Fields(editor)
	name := parts[0]
	args := append(parts[1:], path)

	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}
