package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"hybridchat/internal/util/memzero"
)

const fileMode os.FileMode = 0o600

// readJSON reads path into out; a missing file leaves out untouched.
func readJSON(path string, out any) error {
	b, err := readFile(path)
	if err != nil || b == nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// writeJSON writes v as indented JSON.
func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, b)
}

// readSealed opens the sealed JSON file at path into out. It reports false
// when the file does not exist.
func readSealed(path, passphrase, purpose string, out any) (bool, error) {
	b, err := readFile(path)
	if err != nil || b == nil {
		return false, err
	}
	raw, err := open(passphrase, purpose, b)
	if err != nil {
		return false, err
	}
	defer memzero.Zero(raw)
	return true, json.Unmarshal(raw, out)
}

// writeSealed marshals v and seals it to path under passphrase.
func writeSealed(path, passphrase, purpose string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)
	b, err := seal(passphrase, purpose, raw, defaultKDF)
	if err != nil {
		return err
	}
	return writeFile(path, b)
}

// readFile reads the file at path; a missing file returns (nil, nil).
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return b, err
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(fileMode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
