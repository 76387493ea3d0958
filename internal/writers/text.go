// internal/writers/text.go
// Tab-separated text output: one summary line per run, or every trajectory
// record when tracing.
package writers

import (
	"bufio"
	"fmt"
	"io"

	"rfold/internal/ensemble"
)

const (
	summaryHeader = "run\tseed\thalt\ttime\tsteps\tenergy\tstructure"
	traceHeader   = "run\tstep\ttime\tenergy\tstructure"
)

func init() {
	Register("text", func(header, trace bool) Factory {
		return &textFactory{header: header, trace: trace}
	})
}

type textFactory struct {
	header bool
	trace  bool
}

func (f *textFactory) Start(out io.Writer, bufSize int) (chan<- ensemble.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 16
	}
	in := make(chan ensemble.Result, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bufio.NewWriter(out)
		write := func(format string, a ...any) error {
			_, err := fmt.Fprintf(bw, format, a...)
			return err
		}
		if f.header {
			h := summaryHeader
			if f.trace {
				h = traceHeader
			}
			if err := write("%s\n", h); err != nil {
				done <- err
				return
			}
		}
		for res := range in {
			var err error
			if f.trace {
				for _, r := range res.Records {
					if err = write("%d\t%d\t%g\t%d\t%s\n",
						res.Index, r.Step, r.Time, r.Energy, r.Structure); err != nil {
						break
					}
				}
			} else {
				err = write("%d\t%d\t%s\t%g\t%d\t%d\t%s\n",
					res.Index, res.Seed, res.Halt, res.Time, res.Steps,
					res.FinalEnergy, res.FinalStructure)
			}
			if err != nil {
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
