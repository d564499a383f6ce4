package hostenv

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Finder looks up executables and tool directories. Its function fields default to the os
// package and can be replaced in tests.
type Finder struct {
	// IsWindows selects the Windows lookup rules: every extension in PATHEXT is tried.
	IsWindows bool

	Stat   func(name string) (os.FileInfo, error)
	Getenv func(key string) string
}

// NewFinder returns a Finder that uses the real file system and environment.
func NewFinder(isWindows bool) *Finder {
	return &Finder{
		IsWindows: isWindows,
		Stat:      os.Stat,
		Getenv:    os.Getenv,
	}
}

// HostIsWindows reports whether this binary was built for Windows.
func HostIsWindows() bool {
	return runtime.GOOS == "windows"
}

// SystemPath returns the directories listed in the PATH environment variable.
func (f *Finder) SystemPath() []string {
	return filepath.SplitList(f.Getenv("PATH"))
}

// Which returns the first file named command in the given directories, in order. On Windows
// each PATHEXT extension is tried as well. An absolute command that names an existing file is
// returned as-is.
func (f *Finder) Which(command string, paths []string) (string, bool) {
	if filepath.IsAbs(command) && f.isFile(command) {
		return filepath.Clean(command), true
	}
	for _, dir := range paths {
		if dir == "" {
			continue
		}
		for _, ext := range f.extensions() {
			p := filepath.Join(dir, command+ext)
			if f.isFile(p) {
				return filepath.Clean(p), true
			}
		}
	}
	return "", false
}

// WhichOnPath is Which applied to the system PATH.
func (f *Finder) WhichOnPath(command string) (string, bool) {
	return f.Which(command, f.SystemPath())
}

// CheckToolsPath returns true if every tool exists as a file in dir.
func (f *Finder) CheckToolsPath(dir string, tools []string) bool {
	for _, tool := range tools {
		if !f.isFile(filepath.Join(dir, tool)) {
			return false
		}
	}
	return true
}

// WhichTools returns the first directory in paths that contains every tool.
func (f *Finder) WhichTools(tools []string, paths []string) (string, bool) {
	for _, dir := range paths {
		if dir == "" {
			continue
		}
		if f.CheckToolsPath(dir, tools) {
			return dir, true
		}
	}
	return "", false
}

// IsDir returns true if path exists and is a directory.
func (f *Finder) IsDir(path string) bool {
	info, err := f.Stat(path)
	return err == nil && info.IsDir()
}

func (f *Finder) isFile(path string) bool {
	info, err := f.Stat(path)
	return err == nil && !info.IsDir()
}

func (f *Finder) extensions() []string {
	if !f.IsWindows {
		return []string{""}
	}
	var exts []string
	for _, e := range strings.Split(f.Getenv("PATHEXT"), ";") {
		exts = append(exts, strings.ToLower(e))
	}
	if len(exts) == 0 || exts[0] != "" {
		exts = append([]string{""}, exts...)
	}
	return exts
}
