package batch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"thumbtrack/internal/services"
)

// DefaultExtensions lists the container extensions batch mode picks up.
var DefaultExtensions = []string{".mp4", ".webm", ".mov", ".mkv", ".avi"}

// FindVideos walks root and returns every video file whose extension matches,
// sorted with numeric-aware collation so episode_2 precedes episode_10.
func FindVideos(root string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	wanted := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		wanted[ext] = struct{}{}
	}

	var videos []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if _, ok := wanted[strings.ToLower(filepath.Ext(entry.Name()))]; ok {
			videos = append(videos, path)
		}
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidInput, "batch", "",
			fmt.Sprintf("walk %q", root), err)
	}

	collate.New(language.Und, collate.Numeric).SortStrings(videos)
	return videos, nil
}
