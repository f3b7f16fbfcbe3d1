// pkg/api/results_v1.go
package api

// ResultV1 is the stable JSON/JSONL schema for per-probe test results.
// Keep fields, names, and types stable. Add new fields only with
// ",omitempty". Undefined statistics are encoded as null, since JSON has
// no NaN.
type ResultV1 struct {
	Probe    string   `json:"probe"`
	Chr      string   `json:"chr,omitempty"`
	Pos      int      `json:"pos,omitempty"`
	NCase    int      `json:"n_case"`
	NControl int      `json:"n_control"`
	U        *float64 `json:"u"`
	P        *float64 `json:"p"`
	PBH      *float64 `json:"p_bh"`
	PBonf    *float64 `json:"p_bonferroni"`
	Method   string   `json:"method,omitempty"`
}
