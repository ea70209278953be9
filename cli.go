package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"path/filepath"
	"strconv"
	"strings"

	"JuliaSet/colorize"
	"JuliaSet/coordinator"
	"JuliaSet/julia"
	"JuliaSet/misc"
	"JuliaSet/task"
	"JuliaSet/worker"
)

const (
	ExitSuccess = iota
	ExitUnknownSelfName
	ExitWrongArguments
	ExitBadInteger
	ExitIOError
	ExitInvalidConfiguration
	ExitRenderFailure
)

// exitError carries the exit code a failed subcommand should end the process with.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func fail(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCode picks the exit code for an error coming out of a subcommand.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ExitIOError
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ExitIOError
	}
	return ExitRenderFailure
}

type RenderCmd struct {
	Width  string `arg:"positional,required" help:"width of the image in pixels"`
	Height string `arg:"positional,required" help:"height of the image in pixels"`
	Path   string `arg:"positional" help:"where to write the image, defaults to julia_set.png in the current directory"`
}

type AnimateCmd struct {
	Colorize   bool   `arg:"--colorize" help:"color the frames instead of leaving them grayscale"`
	Dimensions string `arg:"--dimensions" default:"800,600" help:"WIDTH,HEIGHT of every frame"`
	Multiply   int    `arg:"--multiply" default:"1" help:"multiply the frames of every transition by this factor"`
	PointsFile string `arg:"--points-file" default:"animation-steps.csv" help:"CSV of real, imaginary[, steps] rows the parameter travels through"`
	Output     string `arg:"--output" default:"./animate" help:"directory for the frames, regular files in it are removed first"`
	Serve      string `arg:"--serve" help:"hand the frames out to workers connecting to this address"`
	Settings   string `arg:"--settings" help:"coordinator settings JSON, replaces --colorize, --dimensions, --output and --serve"`
}

type TilesCmd struct {
	Colorize bool    `arg:"--colorize" help:"color the tiles instead of leaving them grayscale"`
	Edge     int     `arg:"--edge" default:"200" help:"edge of every square tile in pixels"`
	High     float64 `arg:"--high" default:"1.5" help:"highest real and imaginary part of the parameter"`
	Low      float64 `arg:"--low" default:"-1.5" help:"lowest real and imaginary part of the parameter"`
	Output   string  `arg:"--output" default:"./tiles" help:"directory for the composite images"`
	Serve    string  `arg:"--serve" help:"hand the tiles out to workers connecting to this address"`
	Settings string  `arg:"--settings" help:"coordinator settings JSON, replaces --colorize, --edge, --output and --serve"`
	Steps    uint    `arg:"--steps" default:"7" help:"tiles along each side of a composite"`
}

type WorkerCmd struct {
	Coordinator string `arg:"--coordinator" help:"address of the coordinator, defaults to port 51000 on this machine"`
	Loops       int    `arg:"--loops" default:"1" help:"tasks rendered at the same time"`
	Settings    string `arg:"--settings" help:"worker settings JSON, replaces --coordinator and --loops"`
}

type Args struct {
	Diagnostics bool   `arg:"--diagnostics" help:"start a gops agent for the lifetime of the process"`
	Profile     string `arg:"--profile" help:"write a cpu, mem or trace profile to the current directory"`

	Animate *AnimateCmd `arg:"subcommand:animate" help:"render the frames of a path through parameter space"`
	Render  *RenderCmd  `arg:"subcommand:render" help:"render the default julia set to a png"`
	Tiles   *TilesCmd   `arg:"subcommand:tiles" help:"render grids of julia sets, one composite per threshold"`
	Worker  *WorkerCmd  `arg:"subcommand:worker" help:"render tasks handed out by a coordinator"`
}

func parseDimension(value string) (int, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, fail(ExitBadInteger, fmt.Errorf("couldn't parse '%s' as an integer", value))
	}
	if n == 0 {
		return 0, fail(ExitInvalidConfiguration, fmt.Errorf("dimension %s must be positive", value))
	}
	return int(n), nil
}

// parseDimensions reads WIDTH,HEIGHT.
func parseDimensions(value string) (int, int, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, fail(ExitWrongArguments, fmt.Errorf("dimensions %q are not WIDTH,HEIGHT", value))
	}
	width, err := parseDimension(parts[0])
	if err != nil {
		return 0, 0, err
	}
	height, err := parseDimension(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func (cmd *RenderCmd) Run(stdout io.Writer) error {
	width, err := parseDimension(cmd.Width)
	if err != nil {
		return err
	}
	height, err := parseDimension(cmd.Height)
	if err != nil {
		return err
	}
	path, err := misc.FixImagePath(cmd.Path, "julia_set.png")
	if err != nil {
		return fail(ExitIOError, err)
	}

	fmt.Fprintln(stdout, "Got parameters:")
	fmt.Fprintf(stdout, "  width:  %d\n", width)
	fmt.Fprintf(stdout, "  height: %d\n", height)
	fmt.Fprintf(stdout, "  path:   %s\n", path)

	// Render at twice the size and scale down to smooth the edges
	settings := julia.Settings{
		Height:      height * 2,
		Rectilinear: true,
		Threshold:   2.0,
		Viewport:    julia.DefaultViewport,
		Width:       width * 2,
	}
	if err := settings.Verify(); err != nil {
		return fail(ExitInvalidConfiguration, err)
	}

	gray, err := settings.Render(task.NewTask(0, 0, coordinator.DefaultParameter, settings.Threshold))
	if err != nil {
		return fail(ExitRenderFailure, err)
	}
	img := misc.Resize(colorize.NewHSLColorizer().Colorize(gray), width, height)

	if err := misc.EnsureDirectory(filepath.Dir(path)); err != nil {
		return fail(ExitIOError, err)
	}
	if err := misc.SavePNG(path, img); err != nil {
		return fail(ExitIOError, err)
	}
	return nil
}

func (cmd *AnimateCmd) settings() (coordinator.Settings, error) {
	if cmd.Settings != "" {
		settings, err := coordinator.NewSettings(cmd.Settings)
		if err != nil {
			return settings, fail(ExitInvalidConfiguration, err)
		}
		return settings, nil
	}

	width, height, err := parseDimensions(cmd.Dimensions)
	if err != nil {
		return coordinator.Settings{}, err
	}
	settings := coordinator.Settings{
		ClearOutput: true,
		Colorize:    cmd.Colorize,
		OutputPath:  cmd.Output,
		RenderSettings: julia.Settings{
			Height:      height,
			Rectilinear: true,
			Threshold:   2.0,
			Viewport:    julia.Viewport{MinX: -1.1, MaxX: 1.1, MinY: -1.1, MaxY: 1.1},
			Width:       width,
		},
		ServerAddress: cmd.Serve,
	}
	if err := settings.Verify(); err != nil {
		return settings, fail(ExitInvalidConfiguration, err)
	}
	return settings, nil
}

func (cmd *AnimateCmd) Run() error {
	if cmd.Multiply < 1 {
		return fail(ExitInvalidConfiguration, fmt.Errorf("multiply %d must be at least 1", cmd.Multiply))
	}
	settings, err := cmd.settings()
	if err != nil {
		return err
	}

	points, err := coordinator.LoadPathPoints(cmd.PointsFile)
	if err != nil {
		return fail(ExitIOError, err)
	}
	job := coordinator.NewAnimationJob(coordinator.PairPoints(points), cmd.Multiply, settings.RenderSettings.Threshold)

	c, err := coordinator.NewCoordinator(settings, job)
	if err != nil {
		return fail(ExitInvalidConfiguration, err)
	}
	return c.Run()
}

func (cmd *TilesCmd) settings() (coordinator.Settings, error) {
	if cmd.Settings != "" {
		settings, err := coordinator.NewSettings(cmd.Settings)
		if err != nil {
			return settings, fail(ExitInvalidConfiguration, err)
		}
		return settings, nil
	}

	if cmd.Edge <= 0 {
		return coordinator.Settings{}, fail(ExitInvalidConfiguration, fmt.Errorf("tile edge %d must be positive", cmd.Edge))
	}
	settings := coordinator.Settings{
		Colorize:   cmd.Colorize,
		OutputPath: cmd.Output,
		RenderSettings: julia.Settings{
			Height:   cmd.Edge,
			Viewport: julia.DefaultViewport,
			Width:    cmd.Edge,
		},
		ServerAddress: cmd.Serve,
	}
	if err := settings.Verify(); err != nil {
		return settings, fail(ExitInvalidConfiguration, err)
	}
	return settings, nil
}

func (cmd *TilesCmd) Run() error {
	settings, err := cmd.settings()
	if err != nil {
		return err
	}

	grid := coordinator.TileGrid{High: cmd.High, Low: cmd.Low, Steps: cmd.Steps}
	if err := grid.Verify(); err != nil {
		return fail(ExitInvalidConfiguration, err)
	}

	c, err := coordinator.NewCoordinator(settings, coordinator.NewTileJob(grid))
	if err != nil {
		return fail(ExitInvalidConfiguration, err)
	}
	return c.Run()
}

func (cmd *WorkerCmd) Run() error {
	settings := worker.Settings{
		CoordinatorAddress: cmd.Coordinator,
		Loops:              cmd.Loops,
	}
	if cmd.Settings != "" {
		var err error
		settings, err = worker.NewSettings(cmd.Settings)
		if err != nil {
			return fail(ExitInvalidConfiguration, err)
		}
	}

	w, err := worker.NewWorker(settings)
	if err != nil {
		return fail(ExitInvalidConfiguration, err)
	}
	return w.Run()
}
