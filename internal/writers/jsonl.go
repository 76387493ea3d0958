// internal/writers/jsonl.go
package writers

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"rfold/internal/ensemble"
)

func init() {
	Register("jsonl", func(header, trace bool) Factory {
		return &jsonlFactory{trace: trace}
	})
}

// One pooled 64 KiB buffer per encoder goroutine; results can carry long
// traces, so the buffer is worth reusing across ensemble invocations.
var jsonlBufPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

type jsonlFactory struct {
	trace bool
}

// Start streams each ensemble.Result as one JSON line. Without tracing the
// per-step records are dropped from the wire form.
func (f *jsonlFactory) Start(out io.Writer, bufSize int) (chan<- ensemble.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan ensemble.Result, bufSize)
	done := make(chan error, 1)
	trace := f.trace

	go func() {
		bw := jsonlBufPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			jsonlBufPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		for res := range in {
			if !trace {
				res.Records = nil
			}
			if err := enc.Encode(res); err != nil {
				done <- err
				return
			}
		}
		if err := bw.Flush(); err != nil && !IsBrokenPipe(err) {
			done <- err
			return
		}
		done <- nil
	}()

	return in, done
}
