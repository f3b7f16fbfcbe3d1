// internal/writers/results.go
package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"methdiff/internal/common"
	"methdiff/internal/jsonlutil"
	"methdiff/internal/output"
	"methdiff/internal/pipeline"
)

// StartResultWriter spins up a writer goroutine for per-probe results and
// returns the input channel plus a one-shot error channel resolved after
// the input channel is closed and the output flushed.
func StartResultWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- pipeline.Result, <-chan error) {
	if format == output.FormatJSONL && !sort {
		return jsonlutil.Start[pipeline.Result](out, bufSize,
			func(enc *json.Encoder, r pipeline.Result) error {
				return enc.Encode(output.ToAPIResult(r))
			},
			IsBrokenPipe,
		)
	}

	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan pipeline.Result, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case output.FormatJSONL: // sorted: buffer, order, then stream
			var buf []pipeline.Result
			for r := range in {
				buf = append(buf, r)
			}
			common.SortResults(buf)
			enc := json.NewEncoder(out)
			for _, r := range buf {
				if err = enc.Encode(output.ToAPIResult(r)); err != nil {
					break
				}
			}

		case output.FormatJSON:
			var buf []pipeline.Result
			for r := range in {
				buf = append(buf, r)
			}
			if sort {
				common.SortResults(buf)
			}
			err = output.WriteJSON(out, buf)

		case output.FormatText:
			if sort {
				var buf []pipeline.Result
				for r := range in {
					buf = append(buf, r)
				}
				common.SortResults(buf)
				err = output.WriteText(out, buf, header)
			} else {
				err = output.StreamText(out, in, header)
			}

		default:
			for range in {
			}
			err = fmt.Errorf("unsupported output %q", format)
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
