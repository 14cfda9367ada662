// Package loader reads Glowy source files from local or remote storage,
// or from standard input, into program.Source values ready for parsing.
package loader

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/viant/afs"

	"github.com/viant/glowy/program"
)

// Loader downloads source files through afs, so a path can be a plain
// local file or any URL afs understands (s3://, gs://, mem://, ...).
type Loader struct {
	fs afs.Service
}

// New returns a Loader backed by afs's default service.
func New() *Loader {
	return &Loader{fs: afs.New()}
}

// Load downloads each path in order and returns one program.Source per
// path. A download failure is wrapped with the offending path so a
// CLI invocation's error message points at the file that failed.
func (l *Loader) Load(ctx context.Context, paths []string) ([]program.Source, error) {
	sources := make([]program.Source, 0, len(paths))
	for _, path := range paths {
		content, err := l.fs.DownloadWithURL(ctx, path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %v", path)
		}
		sources = append(sources, program.Source{Name: path, Text: string(content)})
	}
	return sources, nil
}

// LoadStdin reads all of r (normally os.Stdin) as a single source named
// "stdin", used when glowy is invoked with no file arguments.
func LoadStdin(r io.Reader) (program.Source, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return program.Source{}, errors.Wrap(err, "failed to read stdin")
	}
	return program.Source{Name: "stdin", Text: string(content)}, nil
}
