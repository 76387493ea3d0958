// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"rfold-core/energy"
	"rfold-core/kinetics"
	"rfold/internal/cli"
	"rfold/internal/config"
	"rfold/internal/ensemble"
	"rfold/internal/logging"
	"rfold/internal/version"
	"rfold/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("rfold")
	fs.SetOutput(io.Discard)

	usage := func() int {
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		return usage()
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usage()
		}
		_, _ = fmt.Fprintln(stderr, err)
		if usage() != 0 {
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "rfold version %s\n", version.Version)
		if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var fileEvents []kinetics.TranscriptionEvent
	if opts.ConfigFile != "" {
		f, err := config.Load(opts.ConfigFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		f.Apply(&opts, set)
		if f.Transcription != nil {
			for _, ev := range f.Transcription.Events {
				fileEvents = append(fileEvents, kinetics.TranscriptionEvent{Time: ev.Time, Residues: ev.Residues})
			}
		}
		if err := opts.Validate(); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	}
	if opts.Sequence == "" {
		_, _ = fmt.Fprintln(stderr, "no sequence given (use --sequence or the config file)")
		return 2
	}

	log, err := logging.New(stderr, logging.Options{
		Level: opts.LogLevel,
		Quiet: opts.Quiet,
		File:  opts.LogFile,
	})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	tables := energy.DefaultTables()
	if opts.ParamFile != "" {
		if tables, err = energy.LoadTablesFile(opts.ParamFile); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	}
	model := energy.NewTurner(tables, opts.Temperature, opts.MinHairpin)

	var rates kinetics.RateModel
	switch opts.RateModel {
	case cli.RateKawasaki:
		rates, err = kinetics.NewKawasaki(opts.K0, opts.Temperature)
	default:
		rates, err = kinetics.NewMetropolis(opts.K0, opts.Temperature)
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	base := kinetics.Config{
		Sequence:    opts.Sequence,
		Start:       opts.Start,
		Target:      opts.Target,
		Model:       model,
		Rates:       rates,
		Seed:        opts.Seed,
		TimeHorizon: opts.TimeHorizon,
		MaxSteps:    opts.MaxSteps,
		MaxSpan:     opts.MaxSpan,
		AllowShifts: opts.Shifts,
	}

	var transcribe *ensemble.TranscribeSpec
	switch {
	case len(fileEvents) > 0:
		transcribe = &ensemble.TranscribeSpec{InitialLength: opts.TxInitial, Events: fileEvents}
	case opts.TxRate > 0:
		transcribe = &ensemble.TranscribeSpec{
			InitialLength: opts.TxInitial,
			Events:        kinetics.UniformSchedule(len(opts.Sequence), opts.TxInitial, 1/opts.TxRate),
		}
	}

	// Fail fast on config problems instead of once per run.
	if transcribe == nil {
		if _, err := kinetics.NewEngine(base); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	} else if _, err := energy.ParseSequence(opts.Sequence); err != nil {
		_, _ = fmt.Fprintln(stderr, fmt.Errorf("sequence: %w", err))
		return 2
	}

	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	wf, err := writers.New(opts.Output, opts.Header, opts.Trace)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	inCh, writeErr := wf.Start(outw, threads*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	total, perr := ensemble.Run(ctx, log, ensemble.Spec{
		Base:       base,
		Transcribe: transcribe,
		Runs:       opts.Runs,
		Threads:    threads,
	}, func(res ensemble.Result) error {
		select {
		case inCh <- res:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, perr)
		return 3
	}
	if total < opts.Runs {
		log.Warnf("%d of %d runs failed", opts.Runs-total, opts.Runs)
		if total == 0 {
			return 1
		}
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
