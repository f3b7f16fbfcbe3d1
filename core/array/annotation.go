// core/array/annotation.go
package array

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadAnnotation reads a probe annotation TSV with columns
//
//	probe_id  chr  pos  type  channel  address_a  address_b
//
// Lines starting with '#' and a header line repeating the column names are
// skipped. "." stands for "not applicable" (channel and address_b of Type II
// probes). Probe IDs must be unique.
func LoadAnnotation(path string) ([]Probe, error) {
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

	var list []Probe
	seen := make(map[string]int)
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	ln := 0
	first := true // the header may follow '#' comment lines
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if first {
			first = false
			if strings.EqualFold(f[0], "probe_id") {
				continue
			}
		}
		if len(f) != 7 {
			return nil, fmt.Errorf("%s:%d want 7 fields, got %d", path, ln, len(f))
		}
		pos, err := strconv.Atoi(f[2])
		if err != nil {
			return nil, fmt.Errorf("%s:%d bad pos: %v", path, ln, err)
		}
		p := Probe{
			ID:       f[0],
			Chr:      f[1],
			Pos:      pos,
			Type:     ProbeType(f[3]),
			AddressA: dotEmpty(f[5]),
			AddressB: dotEmpty(f[6]),
		}
		switch p.Type {
		case TypeI:
			switch f[4] {
			case string(ChannelGrn), string(ChannelRed):
				p.Channel = Channel(f[4])
			default:
				return nil, fmt.Errorf("%s:%d Type I probe %s needs channel Grn or Red, got %q", path, ln, p.ID, f[4])
			}
			if p.AddressA == "" || p.AddressB == "" {
				return nil, fmt.Errorf("%s:%d Type I probe %s needs both bead addresses", path, ln, p.ID)
			}
		case TypeII:
			if f[4] != "." && f[4] != "" {
				return nil, fmt.Errorf("%s:%d Type II probe %s must not declare a channel", path, ln, p.ID)
			}
			if p.AddressA == "" {
				return nil, fmt.Errorf("%s:%d Type II probe %s needs address_a", path, ln, p.ID)
			}
			p.AddressB = ""
		default:
			return nil, fmt.Errorf("%s:%d unknown probe type %q", path, ln, f[3])
		}
		if prev, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%s:%d duplicate probe_id %q (first at line %d)", path, ln, p.ID, prev)
		}
		seen[p.ID] = ln
		list = append(list, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: no probes", path)
	}
	return list, nil
}

func dotEmpty(s string) string {
	if s == "." {
		return ""
	}
	return s
}
