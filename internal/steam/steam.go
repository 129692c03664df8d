// Package steam locates a Steam installation and resolves app names from
// its library manifests. Nothing here is consulted by the parsing core; the
// monitor receives a resolved install root and a label resolver.
package steam

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ErrNotFound reports that no probe produced a usable install root.
var ErrNotFound = errors.New("steam installation not found")

// Probe is one strategy for locating the Steam install root. It returns the
// candidate path and whether the probe produced one at all; the caller still
// verifies the directory exists.
type Probe func() (string, bool)

// FixedPath returns a probe for an explicitly configured install root.
// An empty path yields a probe that never matches.
func FixedPath(path string) Probe {
	return func() (string, bool) {
		return path, path != ""
	}
}

// DefaultProbes returns the well-known install locations, most specific
// first. On Windows these cover the Program Files defaults; elsewhere the
// usual per-user locations.
func DefaultProbes() []Probe {
	var candidates []string
	for _, env := range []string{"ProgramFiles(x86)", "ProgramFiles"} {
		if dir := os.Getenv(env); dir != "" {
			candidates = append(candidates, filepath.Join(dir, "Steam"))
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, "Steam"),
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
		)
	}

	probes := make([]Probe, 0, len(candidates))
	for _, c := range candidates {
		probes = append(probes, FixedPath(c))
	}
	return probes
}

// FindInstallRoot tries each probe in order and returns the first candidate
// that is an existing directory.
func FindInstallRoot(probes []Probe) (string, error) {
	for _, probe := range probes {
		path, ok := probe()
		if !ok {
			continue
		}
		st, err := os.Stat(path)
		if err != nil || !st.IsDir() {
			log.Debug().Str("path", path).Msg("Install root probe missed")
			continue
		}
		log.Debug().Str("path", path).Msg("Install root probe hit")
		return filepath.Clean(path), nil
	}
	return "", ErrNotFound
}

// LogPath returns the content log location under an install root.
func LogPath(root string) string {
	return filepath.Join(root, "logs", "content_log.txt")
}
