// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"methdiff/internal/pipeline"
)

// WriteText prints one TSV line per result from a buffered slice.
func WriteText(w io.Writer, list []pipeline.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}

// StreamText prints results as they arrive on ch.
func StreamText(w io.Writer, ch <-chan pipeline.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for r := range ch {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			// Drain so the producer can finish; first error wins.
			for range ch {
			}
			return err
		}
	}
	return nil
}
