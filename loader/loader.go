// Package loader reads scope declarations from files. A loader
// failure is the only fatal condition of a reconciliation run: without
// a declaration sequence there is nothing to report on.
package loader

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/dhcpops/scoperec/scopecfg"
)

// Supported declaration file formats.
const (
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

// Loads scope declarations from a file. When the format is empty it is
// derived from the file extension.
func Load(path, format string) ([]scopecfg.ScopeDeclaration, error) {
	if format == "" {
		format = FormatByExtension(path)
	}
	switch format {
	case FormatCSV:
		return LoadCSV(path)
	case FormatYAML:
		return LoadYAML(path)
	default:
		return nil, errors.Errorf("unsupported declarations format '%s'", format)
	}
}

// Derives the declaration file format from the file extension. CSV is
// the fallback for unrecognized extensions.
func FormatByExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatCSV
	}
}
