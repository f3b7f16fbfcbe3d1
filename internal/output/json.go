// internal/output/json.go
package output

import (
	"io"
	"math"

	"methdiff/internal/jsonutil"
	"methdiff/internal/pipeline"
	"methdiff/pkg/api"
)

// ToAPIResult converts a domain result to the stable wire schema (v1).
func ToAPIResult(r pipeline.Result) api.ResultV1 {
	return api.ResultV1{
		Probe:    r.Probe,
		Chr:      r.Chr,
		Pos:      r.Pos,
		NCase:    r.Test.N1,
		NControl: r.Test.N2,
		U:        fptr(r.Test.U),
		P:        fptr(r.Test.P),
		PBH:      fptr(r.PBH),
		PBonf:    fptr(r.PBonf),
		Method:   string(r.Test.Method),
	}
}

// fptr boxes a float for JSON, mapping NaN to null.
func fptr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func toAPIResults(list []pipeline.Result) []api.ResultV1 {
	out := make([]api.ResultV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIResult(r))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 results (pretty-indented).
func WriteJSON(w io.Writer, list []pipeline.Result) error {
	return jsonutil.EncodePretty(w, toAPIResults(list))
}
