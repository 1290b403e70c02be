package suggest

import (
	"fmt"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"

	"github.com/lucas-albers-lz4/jsonimg/pkg/fileutil"
)

// Hints is the on-disk list of field names to always treat as images.
//
//	fields:
//	  - heroShot
//	  - coverArt
type Hints struct {
	Fields []string `json:"fields"`
}

// LoadHints reads a YAML or JSON hints file.
func LoadHints(fs afero.Fs, path string) ([]string, error) {
	data, err := fileutil.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var h Hints
	if err := yaml.UnmarshalStrict(data, &h); err != nil {
		return nil, fmt.Errorf("failed to parse hints file %s: %w", path, err)
	}
	return h.Fields, nil
}
