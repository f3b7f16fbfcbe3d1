// internal/writers/joined.go
package writers

import (
	"bufio"
	"fmt"
	"os"

	"methdiff-core/join"
	"methdiff/internal/output"
)

// JoinedTSVHeader is the column layout of the exported long-format table.
const JoinedTSVHeader = "probe\tchr\tpos\ttype\tsample\tgroup\tbeta\tmval\tnorm_beta\tdetection_p"

// WriteJoinedTSV exports the post-QC long-format table to a file, one row
// per surviving (probe, sample).
func WriteJoinedTSV(path string, rows []join.Row) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(fh, 256<<10)
	if _, err := fmt.Fprintln(bw, JoinedTSVHeader); err != nil {
		_ = fh.Close()
		return err
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(bw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Probe, r.Chr, r.Pos, r.Type, r.Sample, r.Group,
			output.Float(r.Beta), output.Float(r.MVal),
			output.Float(r.NormBeta), output.Float(r.DetP),
		)
		if err != nil {
			_ = fh.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
