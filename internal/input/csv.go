// Package input reads initial conditions from tabular sources. A body row
// carries seven numeric fields addressed by header name:
// pos_x, pos_y, pos_z, vel_x, vel_y, vel_z, mass. The mass column is taken
// as already pre-multiplied by G.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/gravsim/internal/vec"
	"github.com/san-kum/gravsim/internal/world"
)

var columns = []string{"pos_x", "pos_y", "pos_z", "vel_x", "vel_y", "vel_z", "mass"}

// ErrNoHeader indicates an input source without a header row.
var ErrNoHeader = errors.New("input: missing header row")

// ReadBodies parses body rows from r. Columns may appear in any order;
// extra columns are ignored. Any malformed row aborts the whole read.
func ReadBodies(r io.Reader) ([]world.Body, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("input: read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range columns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("input: missing column %q", name)
		}
	}

	var bodies []world.Body
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("input: row %d: %w", row, err)
		}

		fields := make([]float64, len(columns))
		for i, name := range columns {
			v, err := strconv.ParseFloat(record[idx[name]], 64)
			if err != nil {
				return nil, fmt.Errorf("input: row %d: column %q: %w", row, name, err)
			}
			fields[i] = v
		}

		bodies = append(bodies, world.NewBody(
			vec.New(fields[0], fields[1], fields[2]),
			vec.New(fields[3], fields[4], fields[5]),
			fields[6],
		))
	}

	return bodies, nil
}

// LoadFile reads body rows from a CSV file.
func LoadFile(path string) ([]world.Body, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	defer f.Close()

	bodies, err := ReadBodies(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bodies, nil
}
