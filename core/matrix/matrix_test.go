package matrix

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsDuplicates(t *testing.T) {
	if _, err := New([]string{"a1", "a1"}, []string{"s1"}); err == nil {
		t.Fatal("expected duplicate row error")
	}
	if _, err := New([]string{"a1"}, []string{"s1", "s1"}); err == nil {
		t.Fatal("expected duplicate column error")
	}
	if _, err := New([]string{""}, []string{"s1"}); err == nil {
		t.Fatal("expected empty ID error")
	}
}

func TestNewStartsMissing(t *testing.T) {
	m, err := New([]string{"a1", "a2"}, []string{"s1", "s2"})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < m.NRows(); i++ {
		for j := 0; j < m.NCols(); j++ {
			if !math.IsNaN(m.At(i, j)) {
				t.Fatalf("cell (%d,%d) not NaN", i, j)
			}
		}
	}
}

func TestLookupMissingID(t *testing.T) {
	m, _ := New([]string{"a1"}, []string{"s1"})
	m.Set(0, 0, 7)
	if got := m.Lookup("a1", "s1"); got != 7 {
		t.Fatalf("want 7, got %v", got)
	}
	if !math.IsNaN(m.Lookup("nope", "s1")) || !math.IsNaN(m.Lookup("a1", "nope")) {
		t.Fatal("absent IDs must read as NaN")
	}
}

func TestReadTSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "red.tsv")
	body := strings.Join([]string{
		"address\tDS1\tWT1",
		"10600313\t1200.5\t901",
		"10600314\tNA\t13",
		"10600315\t44\tnan",
	}, "\n") + "\n"
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := ReadTSV(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if m.NRows() != 3 || m.NCols() != 2 {
		t.Fatalf("bad shape %dx%d", m.NRows(), m.NCols())
	}
	if m.Lookup("10600313", "DS1") != 1200.5 {
		t.Errorf("bad value: %v", m.Lookup("10600313", "DS1"))
	}
	if !math.IsNaN(m.Lookup("10600314", "DS1")) || !math.IsNaN(m.Lookup("10600315", "WT1")) {
		t.Error("NA/nan must parse as NaN")
	}
}

func TestReadTSVRejectsRaggedAndDuplicate(t *testing.T) {
	dir := t.TempDir()

	ragged := filepath.Join(dir, "ragged.tsv")
	_ = os.WriteFile(ragged, []byte("address\ts1\ts2\na1\t1\n"), 0o600)
	if _, err := ReadTSV(ragged); err == nil {
		t.Fatal("expected field count error")
	}

	dup := filepath.Join(dir, "dup.tsv")
	_ = os.WriteFile(dup, []byte("address\ts1\na1\t1\na1\t2\n"), 0o600)
	if _, err := ReadTSV(dup); err == nil {
		t.Fatal("expected duplicate address error")
	}
}

func TestSelectColumns(t *testing.T) {
	m, err := New([]string{"r1", "r2"}, []string{"c1", "c2", "c3"})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, float64(10*i+j))
		}
	}
	sub, err := m.SelectColumns([]string{"c3", "c1"})
	if err != nil {
		t.Fatalf("SelectColumns: %v", err)
	}
	if sub.NCols() != 2 || sub.ColIDs[0] != "c3" || sub.ColIDs[1] != "c1" {
		t.Fatalf("bad columns: %v", sub.ColIDs)
	}
	if sub.At(1, 0) != 12 || sub.At(1, 1) != 10 {
		t.Errorf("values not remapped: %v %v", sub.At(1, 0), sub.At(1, 1))
	}
	if _, err := m.SelectColumns([]string{"c4"}); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestSameShape(t *testing.T) {
	a, _ := New([]string{"r1", "r2"}, []string{"c1"})
	b, _ := New([]string{"r1", "r2"}, []string{"c1"})
	c, _ := New([]string{"r2", "r1"}, []string{"c1"})
	if !a.SameShape(b) {
		t.Fatal("identical shapes reported different")
	}
	if a.SameShape(c) {
		t.Fatal("row order must matter")
	}
}
