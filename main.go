package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"JuliaSet/misc"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/alexflint/go-arg"
	"github.com/google/gops/agent"
	"github.com/pkg/profile"
)

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

// profileMode maps the --profile value onto a pkg/profile mode.
func profileMode(name string) (func(*profile.Profile), error) {
	switch name {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	case "trace":
		return profile.TraceProfile, nil
	}
	return nil, fmt.Errorf("unknown profile %q, expected cpu, mem or trace", name)
}

// run parses argv, runs the chosen subcommand and returns the process exit code.
func run(argv []string, stdout io.Writer) int {
	if len(argv) == 0 {
		fmt.Fprintln(stdout, "No args found; we're done here.")
		return ExitUnknownSelfName
	}
	logger := bslogger.NewLogger("JuliaSet", bslogger.Normal, nil)

	var args Args
	p, err := arg.NewParser(arg.Config{Program: argv[0]}, &args)
	if err != nil {
		logger.Error(err.Error())
		return ExitWrongArguments
	}
	err = p.Parse(argv[1:])
	switch {
	case errors.Is(err, arg.ErrHelp):
		p.WriteHelp(stdout)
		return ExitSuccess
	case err != nil:
		fmt.Fprintln(stdout, err.Error())
		p.WriteUsage(stdout)
		return ExitWrongArguments
	case p.Subcommand() == nil:
		p.WriteHelp(stdout)
		return ExitWrongArguments
	}

	if args.Profile != "" {
		mode, err := profileMode(args.Profile)
		if err != nil {
			fmt.Fprintln(stdout, err.Error())
			return ExitWrongArguments
		}
		defer profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}
	if args.Diagnostics {
		if err := agent.Listen(agent.Options{}); err != nil {
			misc.CheckError(err, logger, misc.Warning)
		} else {
			defer agent.Close()
		}
	}

	switch {
	case args.Animate != nil:
		err = args.Animate.Run()
	case args.Render != nil:
		err = args.Render.Run(stdout)
	case args.Tiles != nil:
		err = args.Tiles.Run()
	case args.Worker != nil:
		err = args.Worker.Run()
	}

	if misc.CheckError(err, logger, misc.Error) {
		fmt.Fprintf(stdout, "Encountered error: %s\n", err)
	}
	return exitCode(err)
}
