// core/matrix/npy.go
package matrix

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kshedden/gonpy"
)

// ReadNPY loads an intensity matrix from a NumPy .npy file of float64
// values, with row (address) and column (sample) IDs in "<base>.rows" and
// "<base>.cols" sidecar files, one ID per line.
func ReadNPY(path string) (*Matrix, error) {
	rdr, err := gonpy.NewFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rdr.Shape) != 2 {
		return nil, fmt.Errorf("%s: want a 2-d array, got shape %v", path, rdr.Shape)
	}
	data, err := rdr.GetFloat64()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := strings.TrimSuffix(path, ".npy")
	rowIDs, err := readIDList(base + ".rows")
	if err != nil {
		return nil, err
	}
	colIDs, err := readIDList(base + ".cols")
	if err != nil {
		return nil, err
	}
	nr, nc := rdr.Shape[0], rdr.Shape[1]
	if len(rowIDs) != nr {
		return nil, fmt.Errorf("%s: %d rows but %d row IDs in sidecar", path, nr, len(rowIDs))
	}
	if len(colIDs) != nc {
		return nil, fmt.Errorf("%s: %d columns but %d column IDs in sidecar", path, nc, len(colIDs))
	}

	m, err := New(rowIDs, colIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if rdr.ColumnMajor {
				m.Set(i, j, data[j*nr+i])
			} else {
				m.Set(i, j, data[i*nc+j])
			}
		}
	}
	return m, nil
}

// Read dispatches on file extension: .npy goes through the NumPy reader,
// everything else is treated as TSV.
func Read(path string) (*Matrix, error) {
	if strings.HasSuffix(path, ".npy") {
		return ReadNPY(path)
	}
	return ReadTSV(path)
}

func readIDList(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var ids []string
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			ids = append(ids, s)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ids, nil
}
