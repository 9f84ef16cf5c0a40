// Package input reads systems of program graphs from files.
package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/comalice/pg2hda/internal/pgraph"
)

// Load reads paths into one system and validates it. In the legacy mode each
// file holds one process; in the current mode each file is a YAML document
// whose processes are appended in file order.
func Load(mode pgraph.Mode, paths ...string) (*pgraph.System, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no input file", ErrSyntax)
	}
	sys := pgraph.NewSystem("", mode)
	for i, path := range paths {
		pid := -1
		if len(paths) > 1 {
			pid = i
		}
		if err := readFile(sys, path, pid); err != nil {
			return nil, err
		}
	}
	if sys.Name == "" {
		sys.Name = strings.TrimSuffix(filepath.Base(paths[0]), filepath.Ext(paths[0]))
	}
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	return sys, nil
}

func readFile(sys *pgraph.System, path string, pid int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Read(sys, f, path, pid)
}

// Read adds the content of r to sys according to sys.Mode. pid is only used
// by the legacy format.
func Read(sys *pgraph.System, r io.Reader, file string, pid int) error {
	if sys.Mode == pgraph.ModeLegacy {
		return ReadLegacy(sys, r, file, pid)
	}
	return ReadYAML(sys, r, file)
}
