package coordinator

import (
	"fmt"
	"os"
	"time"

	"JuliaSet/julia"
	"JuliaSet/misc"

	"github.com/BrugadaSyndrome/bslogger"
)

type Settings struct {
	logger bslogger.Logger

	ClearOutput        bool
	Colorize           bool
	OutputHeight       int
	OutputPath         string
	OutputWidth        int
	RenderSettings     julia.Settings
	ServerAddress      string
	TaskTimeoutSeconds int
}

// NewSettings loads coordinator settings from a JSON file.
func NewSettings(settingsFile string) (Settings, error) {
	s := Settings{
		logger: bslogger.NewLogger("CoordinatorSettings", bslogger.Normal, nil),
	}
	if err := misc.LoadSettings(settingsFile, &s); err != nil {
		return s, err
	}
	if err := s.Verify(); err != nil {
		return s, err
	}
	s.logger.Debug(s.String())
	return s, nil
}

func (s *Settings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("Clear Output: %t\n", s.ClearOutput)
	output += fmt.Sprintf("Colorize: %t\n", s.Colorize)
	output += fmt.Sprintf("Output Size: %dx%d\n", s.OutputWidth, s.OutputHeight)
	output += fmt.Sprintf("Output Path: %s\n", s.OutputPath)
	output += fmt.Sprintf("Server Address: %s\n", s.ServerAddress)
	output += fmt.Sprintf("Task Timeout: %s", s.TaskTimeout())
	output += s.RenderSettings.String()
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("CoordinatorSettings", bslogger.Normal, nil)

	// ClearOutput defaults to false already
	// Colorize defaults to false already
	if err := s.RenderSettings.Verify(); err != nil {
		return err
	}
	if s.OutputHeight < 0 || s.OutputWidth < 0 {
		return fmt.Errorf("output size %dx%d cannot be negative", s.OutputWidth, s.OutputHeight)
	}
	if s.OutputPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		s.OutputPath = wd
	}
	// ServerAddress empty means render in this process
	if s.TaskTimeoutSeconds <= 0 {
		s.TaskTimeoutSeconds = 120
	}

	// Resizing needs both sides
	if (s.OutputWidth == 0) != (s.OutputHeight == 0) {
		s.logger.Warning("Only one side of the output size is set; images will not be resized")
		s.OutputWidth, s.OutputHeight = 0, 0
	}

	return nil
}

func (s *Settings) TaskTimeout() time.Duration {
	return time.Duration(s.TaskTimeoutSeconds) * time.Second
}
