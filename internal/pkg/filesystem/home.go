package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// AppDirName is the per-user data directory under $HOME.
const AppDirName = ".texturepro"

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// AppDir returns ~/.texturepro.
func AppDir() string {
	return filepath.Join(UserHomeDir(), AppDirName)
}

// ExpandPath resolves a leading "~/" against the home directory and cleans
// the result. Empty input stays empty.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return ""
	case path == "~":
		return UserHomeDir()
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(UserHomeDir(), path[2:])
	default:
		return filepath.Clean(path)
	}
}
