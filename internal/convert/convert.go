// Package convert runs one SBV to SRT conversion between two files.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mgpai22/sbv2srt/internal/logging"
	"github.com/mgpai22/sbv2srt/internal/subtitle"
)

type Options struct {
	Input  string
	Output string
	CRLF   bool
	BOM    bool
}

type Result struct {
	Input  string
	Output string
	Cues   int
}

// Resolve validates opts and fills in the default output path, the input
// with its extension replaced by .srt.
func Resolve(opts Options) (Options, error) {
	if opts.Input == "" {
		return opts, ErrMissingArgument
	}
	if opts.Output == "" {
		opts.Output = subtitle.ReplaceExtension(opts.Input, subtitle.FormatSRT)
	}
	return opts, nil
}

// Run converts opts.Input into opts.Output. The input must exist before
// anything is read, and nothing is created when it does not. The input is
// buffered before the output is opened, so both may name the same file.
func Run(ctx context.Context, opts Options, logger *logging.Logger) (*Result, error) {
	opts, err := Resolve(opts)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	info, err := os.Stat(opts.Input)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, opts.Input)
	}
	if err != nil {
		return nil, &IOError{Op: "stat", Path: opts.Input, Err: err}
	}
	if info.IsDir() {
		return nil, &IOError{Op: "read", Path: opts.Input, Err: errors.New("is a directory")}
	}

	if format, ok := subtitle.GetFormatFromExtension(opts.Input); !ok || format != subtitle.FormatSBV {
		logger.Warnw("Input does not have an .sbv extension, parsing as SBV anyway",
			"input", opts.Input,
		)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Infow("Reading SBV file", "input", opts.Input)

	lines, err := subtitle.ReadLines(opts.Input)
	if err != nil {
		return nil, &IOError{Op: "read", Path: opts.Input, Err: err}
	}
	logger.Debugw("Read SBV file", "lines", len(lines))

	if sameFile(opts.Input, opts.Output) {
		logger.Infow("Converting in place", "path", opts.Output)
	}

	writeOpts := subtitle.WriteOptions{CRLF: opts.CRLF, BOM: opts.BOM}
	n, err := subtitle.ConvertSBVToSRTFile(ctx, lines, opts.Output, writeOpts)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &IOError{Op: "write", Path: opts.Output, Err: err}
	}

	logger.Infow("Wrote SRT file",
		"output", opts.Output,
		"cues", n,
	)
	if n == 0 {
		logger.Warnw("No timing lines found, output is empty",
			"input", opts.Input,
		)
	}

	return &Result{Input: opts.Input, Output: opts.Output, Cues: n}, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}

	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}
