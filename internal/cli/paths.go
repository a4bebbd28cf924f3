package cli

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/layercanvas/pkg/pipeline"
)

// outputPath derives the file name for one output format. A known format
// extension on base is replaced; a single-format base that already carries
// the right extension is used unchanged.
func outputPath(base, format string, single bool) string {
	ext := filepath.Ext(base)
	known := pipeline.ValidFormats[strings.ToLower(strings.TrimPrefix(ext, "."))]
	if single && known && strings.EqualFold(ext, "."+format) {
		return base
	}
	if known {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}
