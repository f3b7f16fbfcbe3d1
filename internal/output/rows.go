// internal/output/rows.go
package output

import (
	"fmt"
	"math"
	"strconv"

	"methdiff/internal/pipeline"
)

// Float renders a statistic for TSV output; undefined values print as NA,
// never as 0.
func Float(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatRowTSV returns the 10 result columns (no trailing newline).
func FormatRowTSV(r pipeline.Result) string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s",
		r.Probe, r.Chr, r.Pos,
		r.Test.N1, r.Test.N2,
		Float(r.Test.U), Float(r.Test.P),
		Float(r.PBH), Float(r.PBonf),
		r.Test.Method,
	)
}
