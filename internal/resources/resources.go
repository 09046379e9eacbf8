package resources

import (
	"fmt"
	"os"
	"path/filepath"

	"waitingtodo/internal/config"
	apperrors "waitingtodo/internal/infrastructure/errors"
)

// Bundle holds the packaged resources the shell needs before it can start
type Bundle struct {
	Root        string
	IconPath    string
	EntryPath   string
	PreloadPath string

	Icon    []byte
	Preload string
}

// ExecutableDir returns the directory of the running executable with symlinks resolved
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", apperrors.Wrap("executable_dir", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Resolve locates and reads the packaged resources relative to root.
// The icon and preload module are always required; the entry file only in
// production. Any failure is a packaging error and is not retried.
func Resolve(root string, cfg *config.Config) (*Bundle, error) {
	b := &Bundle{
		Root:        root,
		IconPath:    resolvePath(root, cfg.IconPath),
		EntryPath:   resolvePath(root, cfg.EntryPath),
		PreloadPath: resolvePath(root, cfg.PreloadPath),
	}

	icon, err := readFile("icon", b.IconPath)
	if err != nil {
		return nil, err
	}
	if len(icon) == 0 {
		return nil, apperrors.HandleResourceError("resolve_resources", "icon", b.IconPath, fmt.Errorf("icon is empty"))
	}
	b.Icon = icon

	preload, err := readFile("preload", b.PreloadPath)
	if err != nil {
		return nil, err
	}
	b.Preload = string(preload)

	if !cfg.IsDevelopment() {
		info, err := os.Stat(b.EntryPath)
		if err != nil {
			return nil, apperrors.HandleResourceError("resolve_resources", "entry", b.EntryPath, err)
		}
		if info.IsDir() {
			return nil, apperrors.HandleResourceError("resolve_resources", "entry", b.EntryPath, fmt.Errorf("entry is a directory"))
		}
	}

	return b, nil
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func readFile(resource, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.HandleResourceError("resolve_resources", resource, path, err)
	}
	return data, nil
}
