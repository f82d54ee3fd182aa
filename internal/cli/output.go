package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// writeArtifacts writes one file per format and returns the paths written.
//
// With a single format, output is used verbatim. With several, output is a
// base path and each file gets its format as extension. An empty output
// uses defaultBase in the working directory.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, defaultBase string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, fmt.Errorf("no %s artifact rendered", format)
		}
		path := artifactPath(output, defaultBase, format, len(formats) > 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func artifactPath(output, defaultBase, format string, multi bool) string {
	switch {
	case output == "":
		return defaultBase + "." + format
	case multi:
		return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	default:
		return output
	}
}
