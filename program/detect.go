package program

import (
	"context"
	"path/filepath"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// DetectModule walks up from the directory containing startPath looking
// for an enclosing go.mod and returns its declared module path. It never
// fails the analysis run: a missing or unparsable go.mod just means
// diagnostics carry no module path, so the return value is "" rather than
// an error in that case.
func DetectModule(ctx context.Context, startPath string) string {
	dir := filepath.Dir(startPath)
	fs := afs.New()
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if content, err := fs.DownloadWithURL(ctx, goModPath); err == nil && len(content) > 0 {
			if mod, err := modfile.Parse(goModPath, content, nil); err == nil && mod != nil && mod.Module != nil {
				return mod.Module.Mod.Path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
