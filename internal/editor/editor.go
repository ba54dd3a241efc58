package editor

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// EditText round-trips content through the user's editor via a temp
// file and returns the edited result.
func EditText(name, content string) (string, error) {
	ed, err := PreferredEditor()
	if err != nil {
		return "", err
	}
	dir, err := os.MkdirTemp("", "foliate-edit-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, name+".md")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", err
	}

	cmd := exec.Command(ed, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", err
	}

	out, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
