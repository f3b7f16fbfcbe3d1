// core/matrix/tsv.go
package matrix

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ReadTSV loads an intensity matrix from a TSV file (optionally gzipped).
// The header row is "address" (or any label) followed by sample IDs; each
// data row is an address followed by one value per sample. "NA", "nan" and
// "" parse as missing.
func ReadTSV(path string) (*Matrix, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var rd io.Reader = fh
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(fh)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer func() { _ = gz.Close() }()
		rd = gz
	}
	return readTSV(rd, path)
}

func readTSV(rd io.Reader, path string) (*Matrix, error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 256*1024), 16*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, fmt.Errorf("%s: empty matrix file", path)
	}
	header := strings.Split(strings.TrimRight(sc.Text(), "\r\n"), "\t")
	if len(header) < 2 {
		return nil, fmt.Errorf("%s: header needs at least one sample column", path)
	}
	cols := header[1:]

	// Two passes are avoided by collecting rows first; address order is
	// preserved as given in the file.
	var rowIDs []string
	var rows [][]float64
	ln := 1
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) != len(header) {
			return nil, fmt.Errorf("%s:%d want %d fields, got %d", path, ln, len(header), len(f))
		}
		vals := make([]float64, len(cols))
		for j, s := range f[1:] {
			v, err := parseValue(s)
			if err != nil {
				return nil, fmt.Errorf("%s:%d column %s: %v", path, ln, cols[j], err)
			}
			vals[j] = v
		}
		rowIDs = append(rowIDs, f[0])
		rows = append(rows, vals)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m, err := New(rowIDs, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i, vals := range rows {
		copy(m.Row(i), vals)
	}
	return m, nil
}

func parseValue(s string) (float64, error) {
	switch strings.TrimSpace(s) {
	case "", "NA", "na", "nan", "NaN":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("bad value %q", s)
	}
	return v, nil
}
