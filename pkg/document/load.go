package document

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/lucas-albers-lz4/jsonimg/pkg/debug"
	"github.com/lucas-albers-lz4/jsonimg/pkg/fileutil"
)

// File is a loaded document together with its source text.
type File struct {
	Name    string
	Path    string
	Format  Format
	Content []byte
	Root    any
}

// Load reads path from fs and parses it, picking the format from the
// extension and then the content.
func Load(fs afero.Fs, path string) (*File, error) {
	return LoadFormat(fs, path, FormatAuto)
}

// LoadFormat is Load with an explicit format.
func LoadFormat(fs afero.Fs, path string, format Format) (*File, error) {
	debug.FunctionEnter("document.LoadFormat")
	defer debug.FunctionExit("document.LoadFormat")

	data, err := fileutil.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load document %s", path)
	}
	if format == FormatAuto {
		format = DetectFormat(path, data)
	}
	debug.Printf("parsing %s as %s (%d bytes)", path, format, len(data))

	root, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s as %s", path, format)
	}

	return &File{
		Name:    filepath.Base(path),
		Path:    path,
		Format:  format,
		Content: data,
		Root:    root,
	}, nil
}
