package worker

import (
	"fmt"
	"runtime"
	"time"

	"JuliaSet/misc"

	"github.com/BrugadaSyndrome/bslogger"
)

// DefaultCoordinatorPort is used when no coordinator address is configured.
const DefaultCoordinatorPort = 51000

type Settings struct {
	logger bslogger.Logger

	CoordinatorAddress string
	Loops              int
	RetryMilliseconds  int
}

// NewSettings loads worker settings from a JSON file.
func NewSettings(settingsFile string) (Settings, error) {
	s := Settings{
		logger: bslogger.NewLogger("WorkerSettings", bslogger.Normal, nil),
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
	output := "\nWorker settings\n"
	output += fmt.Sprintf("Coordinator Address: %s\n", s.CoordinatorAddress)
	output += fmt.Sprintf("Loops: %d\n", s.Loops)
	output += fmt.Sprintf("Retry Interval: %s\n", s.RetryInterval())
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("WorkerSettings", bslogger.Normal, nil)

	if s.CoordinatorAddress == "" {
		address, err := misc.GetLocalAddress()
		if err != nil {
			return fmt.Errorf("no coordinator address given and %w", err)
		}
		s.CoordinatorAddress = fmt.Sprintf("%s:%d", address, DefaultCoordinatorPort)
		s.logger.Info(fmt.Sprintf("Using default coordinator address %s", s.CoordinatorAddress))
	}
	if s.Loops <= 0 {
		s.Loops = 1
	}
	if s.Loops > runtime.NumCPU() {
		// Every loop already renders with all cores
		s.logger.Warning(fmt.Sprintf("%d task loops is more than the %d available cores", s.Loops, runtime.NumCPU()))
	}
	if s.RetryMilliseconds <= 0 {
		s.RetryMilliseconds = 500
	}
	return nil
}

// RetryInterval is how long a task loop waits when the coordinator has nothing to hand out.
func (s *Settings) RetryInterval() time.Duration {
	return time.Duration(s.RetryMilliseconds) * time.Millisecond
}
