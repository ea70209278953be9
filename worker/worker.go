package worker

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"JuliaSet/coordinator"
	"JuliaSet/julia"
	"JuliaSet/misc"
	"JuliaSet/rpc"
	"JuliaSet/task"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/zeromicro/go-zero/core/syncx"
	"golang.org/x/sync/errgroup"
)

const settingsKey = "render-settings"

// Worker pulls tasks from a coordinator, renders them and sends the pixels back. Its
// task loops share one connection and one copy of the render settings.
type Worker struct {
	logger         bslogger.Logger
	name           string
	renderSettings atomic.Pointer[julia.Settings]
	settings       Settings
	settingsFlight syncx.SingleFlight
	tasksCompleted atomic.Int64

	Client rpc.TcpClient
}

func NewWorker(settings Settings) (*Worker, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	name := workerName()
	return &Worker{
		logger:         bslogger.NewLogger(fmt.Sprintf("Worker %s", name), bslogger.Normal, nil),
		name:           name,
		settings:       settings,
		settingsFlight: syncx.NewSingleFlight(),
		Client:         rpc.NewTcpClient(settings.CoordinatorAddress, fmt.Sprintf("Worker %s client", name)),
	}, nil
}

// workerName identifies this process to the coordinator.
func workerName() string {
	host, err := misc.GetLocalAddress()
	if err != nil {
		host, err = os.Hostname()
		if err != nil {
			host = "unknown"
		}
	}
	return fmt.Sprintf("%s/%d", host, os.Getpid())
}

func (w *Worker) Name() string {
	return w.name
}

// TasksCompleted is the number of tasks the coordinator accepted from this worker.
func (w *Worker) TasksCompleted() int {
	return int(w.tasksCompleted.Load())
}

// Run works until the coordinator has no tasks left or goes away.
func (w *Worker) Run() error {
	startTime := time.Now()

	if err := w.Client.Connect(); err != nil {
		return err
	}
	defer func() {
		misc.CheckError(w.Client.Disconnect(), w.logger, misc.Warning)
	}()

	var registered bool
	if err := w.Client.Call("Coordinator.RegisterWorker", w.name, &registered); err != nil {
		return fmt.Errorf("registering with coordinator: %w", err)
	}

	w.logger.Info(fmt.Sprintf("Processing tasks with %d loops", w.settings.Loops))
	group, ctx := errgroup.WithContext(context.Background())
	for loop := 0; loop < w.settings.Loops; loop++ {
		group.Go(func() error {
			return w.processTasks(ctx, loop)
		})
	}
	err := group.Wait()

	// Anything still handed out to this worker goes back in the coordinator's queue
	var deregistered bool
	deregisterErr := w.Client.Call("Coordinator.DeRegisterWorker", w.name, &deregistered)
	if deregisterErr != nil && !rpc.IsShutdown(deregisterErr) {
		w.logger.Warning(fmt.Sprintf("Deregistering from coordinator - %s", deregisterErr))
	}

	w.logger.Info(fmt.Sprintf("Processed %d tasks in %s", w.TasksCompleted(), time.Since(startTime)))
	return err
}

func (w *Worker) processTasks(ctx context.Context, loop int) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		var todo task.Task
		err := w.Client.Call("Coordinator.GetTask", w.name, &todo)
		switch {
		case err == nil:
		case rpc.IsServerError(err, coordinator.NoTaskAvailable):
			// Everything is handed out but may still come back
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.settings.RetryInterval()):
			}
			continue
		case rpc.IsServerError(err, coordinator.AllTasksCompleted):
			w.logger.Debug(fmt.Sprintf("Loop %d: all tasks completed", loop))
			return nil
		case rpc.IsShutdown(err):
			w.logger.Warning(fmt.Sprintf("Loop %d: coordinator went away", loop))
			return nil
		default:
			return fmt.Errorf("getting a task: %w", err)
		}

		if err := w.render(&todo); err != nil {
			return err
		}

		var accepted bool
		err = w.Client.Call("Coordinator.ReturnTask", todo, &accepted)
		if err != nil {
			if rpc.IsShutdown(err) {
				w.logger.Warning(fmt.Sprintf("Loop %d: coordinator went away", loop))
				return nil
			}
			return fmt.Errorf("returning task %d: %w", todo.ID, err)
		}
		if !accepted {
			w.logger.Debug(fmt.Sprintf("Task %d was already completed by another worker", todo.ID))
			continue
		}
		w.tasksCompleted.Add(1)
	}
}

func (w *Worker) render(todo *task.Task) error {
	settings, err := w.getRenderSettings()
	if err != nil {
		return err
	}

	img, err := settings.Render(*todo)
	if err != nil {
		return fmt.Errorf("rendering task %d: %w", todo.ID, err)
	}
	return todo.AddResult(img.Pix)
}

// getRenderSettings asks the coordinator for its render settings the first time any loop
// needs them. Loops that ask at the same time share the one call.
func (w *Worker) getRenderSettings() (*julia.Settings, error) {
	if settings := w.renderSettings.Load(); settings != nil {
		return settings, nil
	}

	value, err := w.settingsFlight.Do(settingsKey, func() (interface{}, error) {
		if settings := w.renderSettings.Load(); settings != nil {
			return settings, nil
		}

		var settings julia.Settings
		if err := w.Client.Call("Coordinator.GetSettings", w.name, &settings); err != nil {
			return nil, fmt.Errorf("getting render settings: %w", err)
		}
		if err := settings.Verify(); err != nil {
			return nil, err
		}
		w.logger.Debug(settings.String())

		w.renderSettings.Store(&settings)
		return &settings, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*julia.Settings), nil
}
