// This tool reads, sets and removes the loop point of a wav file and smooths
// the seam of the loop.
package main

import (
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/wavloop/internal/cli"
	"github.com/cwbudde/wavloop/internal/config"
)

// version is set via ldflags at build time
var version = "dev"

type app struct {
	Verbose bool             `short:"v" env:"WAVLOOP_VERBOSE" help:"Log each step to stderr."`
	Version kong.VersionFlag `help:"Show version information."`

	Info       infoCmd       `cmd:"" help:"Print format, loop, tags and chunks of a wav file."`
	SetLoop    setLoopCmd    `cmd:"" name:"set-loop" help:"Store a loop point."`
	RemoveLoop removeLoopCmd `cmd:"" name:"remove-loop" help:"Remove the loop point."`
	Blend      blendCmd      `cmd:"" help:"Crossfade the end of the loop into its start."`
	Preview    previewCmd    `cmd:"" help:"Render the loop played several times to a new wav file."`
	ExportAIFF exportAIFFCmd `cmd:"" name:"export-aiff" help:"Write the samples as an aiff file."`
	GenSine    genSineCmd    `cmd:"" name:"gen-sine" help:"Generate a sine test tone, optionally looped."`
}

// globals is bound into every command's Run method.
type globals struct {
	Stdout io.Writer
	Log    *log.Logger
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var cmd app

	vars := kong.Vars{"version": version}
	for k, v := range config.Vars() {
		vars[k] = v
	}

	parser, err := kong.New(&cmd,
		kong.Name("wavloop"),
		kong.Description("Edit the loop point of a PCM wav file."),
		vars,
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "wavloop: ", 0)
	if cmd.Verbose {
		logger.SetOutput(stderr)
	}

	return ctx.Run(&globals{Stdout: stdout, Log: logger})
}
