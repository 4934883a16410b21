package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// WorkPaths captures canonical locations for a merge run.
type WorkPaths struct {
	Root       string
	ConfigFile string
	LogsDir    string
}

// Resolve determines the working root from the optional --out-dir flag or
// the current working directory when the flag is empty.
func Resolve(outDirFlag string) (WorkPaths, error) {
	var (
		root string
		err  error
	)

	if outDirFlag != "" {
		root, err = filepath.Abs(outDirFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return WorkPaths{}, fmt.Errorf("resolve working root: %w", err)
	}

	return WorkPaths{
		Root:       root,
		ConfigFile: filepath.Join(root, "clipmerge.yaml"),
		LogsDir:    filepath.Join(root, "logs"),
	}, nil
}

// EnsureDirs creates the root and logs directories.
func (p WorkPaths) EnsureDirs() error {
	for _, dir := range []string{p.Root, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
