// core/array/array.go
package array

// ProbeType is the bead chemistry of a probe.
type ProbeType string

const (
	TypeI  ProbeType = "I"
	TypeII ProbeType = "II"
)

// Channel is the color channel a Type I probe reports in.
type Channel string

const (
	ChannelGrn  Channel = "Grn"
	ChannelRed  Channel = "Red"
	ChannelNone Channel = "" // Type II probes read both channels
)

// Probe is one interrogated genomic position on the array.
// Type II probes use a single bead (AddressA) and both color channels;
// Type I probes use two beads (AddressA = unmethylated, AddressB =
// methylated) in the declared channel.
type Probe struct {
	ID       string
	Chr      string
	Pos      int
	Type     ProbeType
	Channel  Channel
	AddressA string
	AddressB string
}

// Sample is one array position scanned in the run.
type Sample struct {
	ID    string
	Group string
	Slide string
	Row   string
	Col   string
}

// GroupSizes tallies samples per group label, preserving nothing about order.
func GroupSizes(samples []Sample) map[string]int {
	out := make(map[string]int, 2)
	for _, s := range samples {
		out[s.Group]++
	}
	return out
}
