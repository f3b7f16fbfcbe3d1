// internal/matrixio/matrixio_test.go
package matrixio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"methdiff-core/array"
)

func writeTSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "m.tsv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadChecksSampleColumns(t *testing.T) {
	path := writeTSV(t, "address\tS1\tS2\nA1\t10\t20\n")
	samples := []array.Sample{{ID: "S1"}, {ID: "S2"}}
	m, err := Load(path, samples)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.NCols() != 2 {
		t.Errorf("NCols = %d", m.NCols())
	}
}

func TestLoadDropsExtraColumns(t *testing.T) {
	path := writeTSV(t, "address\tS1\tS2\tS3\nA1\t10\t20\t30\n")
	m, err := Load(path, []array.Sample{{ID: "S2"}})
	if err != nil {
		t.Fatalf("extra columns must be fine: %v", err)
	}
	if m.NCols() != 1 || m.ColIDs[0] != "S2" {
		t.Fatalf("non-sheet columns must be dropped, got %v", m.ColIDs)
	}
	if got := m.Lookup("A1", "S2"); got != 20 {
		t.Errorf("kept column value = %v, want 20", got)
	}
	if _, ok := m.ColIndex("S3"); ok {
		t.Error("dropped column still resolvable")
	}
}

func TestLoadOrdersColumnsBySheet(t *testing.T) {
	path := writeTSV(t, "address\tS2\tS1\nA1\t20\t10\n")
	m, err := Load(path, []array.Sample{{ID: "S1"}, {ID: "S2"}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.ColIDs[0] != "S1" || m.ColIDs[1] != "S2" {
		t.Fatalf("columns must come out in sheet order, got %v", m.ColIDs)
	}
	if m.At(0, 0) != 10 || m.At(0, 1) != 20 {
		t.Errorf("values not carried with their columns: %v %v", m.At(0, 0), m.At(0, 1))
	}
}

func TestLoadRejectsMissingSample(t *testing.T) {
	path := writeTSV(t, "address\tS1\nA1\t10\n")
	_, err := Load(path, []array.Sample{{ID: "S1"}, {ID: "S9"}})
	if err == nil || !strings.Contains(err.Error(), "S9") {
		t.Fatalf("want missing-sample error naming S9, got %v", err)
	}
}
