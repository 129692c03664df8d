package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	reLibraryPath  = regexp.MustCompile(`"path"\s+"([^"]+)"`)
	reManifestName = regexp.MustCompile(`"name"\s+"([^"]*)"`)
)

// LabelResolver maps AppIDs to display names by scanning the appmanifest
// files of every Steam library attached to an install root. Lookups are
// best effort: any missing or unreadable manifest falls back to a
// placeholder embedding the ID.
type LabelResolver struct {
	root string
}

// NewLabelResolver creates a resolver rooted at the Steam install directory.
func NewLabelResolver(root string) *LabelResolver {
	return &LabelResolver{root: root}
}

// LibraryPaths returns the install root plus every additional library listed
// in steamapps/libraryfolders.vdf. Entries that do not exist on disk are
// skipped.
func (r *LabelResolver) LibraryPaths() []string {
	paths := []string{r.root}

	vdf := filepath.Join(r.root, "steamapps", "libraryfolders.vdf")
	data, err := os.ReadFile(vdf)
	if err != nil {
		return paths
	}

	seen := map[string]bool{r.root: true}
	for _, m := range reLibraryPath.FindAllStringSubmatch(string(data), -1) {
		// VDF escapes backslashes in Windows paths.
		path := strings.TrimSpace(strings.ReplaceAll(m[1], `\\`, `\`))
		if path == "" || seen[path] {
			continue
		}
		if st, err := os.Stat(path); err != nil || !st.IsDir() {
			continue
		}
		seen[path] = true
		paths = append(paths, path)
	}
	return paths
}

// AppName returns the display name for an AppID, searching every library's
// appmanifest_<id>.acf for the first non-empty name entry.
func (r *LabelResolver) AppName(id uint32) string {
	manifest := fmt.Sprintf("appmanifest_%d.acf", id)

	for _, lib := range r.LibraryPaths() {
		path := filepath.Join(lib, "steamapps", manifest)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		m := reManifestName.FindStringSubmatch(string(data))
		if m == nil {
			continue
		}
		if name := strings.TrimSpace(m[1]); name != "" {
			return name
		}
	}

	log.Debug().Uint32("app_id", id).Msg("No manifest name found, using placeholder")
	return fmt.Sprintf("App %d", id)
}
