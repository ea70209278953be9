package coordinator

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"path/filepath"
	"sync"
	"time"

	"JuliaSet/colorize"
	"JuliaSet/julia"
	"JuliaSet/misc"
	"JuliaSet/rpc"
	"JuliaSet/task"

	"github.com/BrugadaSyndrome/bslogger"
)

// Replies workers recognise by message; net/rpc only carries the error text.
const (
	AllTasksCompleted = "all tasks completed"
	NoTaskAvailable   = "no task available"
)

type handedOutTask struct {
	since  time.Time
	task   task.Task
	worker string
}

type imageTask struct {
	Image     *image.RGBA
	Path      string
	TilesLeft int
}

// Coordinator works through a job: it renders the tasks itself or hands them out to
// remote workers, then composites the returned tiles and saves every finished image.
type Coordinator struct {
	colorizer      colorize.Colorizer
	completed      map[uint]bool
	images         map[uint]*imageTask
	imagesSaved    int
	job            Job
	logger         bslogger.Logger
	mutex          sync.Mutex
	pending        []task.Task
	settings       Settings
	tasksDone      chan task.Task
	tasksHandedOut map[uint]handedOutTask
	workers        map[string]bool

	Server rpc.TcpServer
}

func NewCoordinator(settings Settings, job Job) (*Coordinator, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	if job.TilesPerImage() == 0 {
		return nil, errors.New("job has an empty tile grid")
	}
	for _, t := range job.Tasks {
		if _, ok := job.Names[t.ImageNumber]; !ok {
			return nil, fmt.Errorf("task %d belongs to unnamed image %d", t.ID, t.ImageNumber)
		}
	}

	coordinator := &Coordinator{
		colorizer:      colorize.Grayscale{},
		completed:      make(map[uint]bool),
		images:         make(map[uint]*imageTask),
		job:            job,
		logger:         bslogger.NewLogger("Coordinator", bslogger.Normal, nil),
		pending:        append([]task.Task(nil), job.Tasks...),
		settings:       settings,
		tasksDone:      make(chan task.Task, len(job.Tasks)),
		tasksHandedOut: make(map[uint]handedOutTask),
		workers:        make(map[string]bool),
	}
	if settings.Colorize {
		coordinator.colorizer = colorize.NewHSLColorizer()
	}
	return coordinator, nil
}

// Run blocks until every image of the job has been saved.
func (c *Coordinator) Run() error {
	startTime := time.Now()
	c.logger.Info(fmt.Sprintf("Starting %s", c.job.String()))

	if err := c.prepareOutput(); err != nil {
		return err
	}

	var err error
	if c.settings.ServerAddress == "" {
		err = c.renderTasks()
	} else {
		err = c.serveTasks()
	}
	if err != nil {
		return err
	}

	c.logger.Info(fmt.Sprintf("Saved %d images in %s", c.imagesSaved, time.Since(startTime)))
	return nil
}

// ImagesSaved is the number of images written so far.
func (c *Coordinator) ImagesSaved() int {
	return c.imagesSaved
}

func (c *Coordinator) prepareOutput() error {
	if err := misc.EnsureDirectory(c.settings.OutputPath); err != nil {
		return err
	}
	if c.settings.ClearOutput {
		c.logger.Info(fmt.Sprintf("Clearing output path %s", c.settings.OutputPath))
		if err := misc.ClearDirectory(c.settings.OutputPath); err != nil {
			return err
		}
	}

	// Copy the settings to the directory so the run can be duplicated in the future
	err := misc.SaveSettings(filepath.Join(c.settings.OutputPath, "settings.json"), c.settings)
	misc.CheckError(err, c.logger, misc.Warning)
	return nil
}

func (c *Coordinator) renderTasks() error {
	for _, t := range c.job.Tasks {
		img, err := c.settings.RenderSettings.Render(t)
		if err != nil {
			return fmt.Errorf("rendering task %d: %w", t.ID, err)
		}
		if err := t.AddResult(img.Pix); err != nil {
			return err
		}
		if err := c.ingestTask(t); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coordinator) serveTasks() error {
	c.Server = rpc.NewTcpServer(c, c.settings.ServerAddress, "CoordinatorServer")
	if err := c.Server.Run(); err != nil {
		return err
	}
	defer func() {
		misc.CheckError(c.Server.Stop(), c.logger, misc.Warning)
	}()
	c.logger.Info(fmt.Sprintf("Waiting for workers at %s", c.Server.Address()))

	heartBeat := time.NewTicker(c.heartBeatInterval())
	defer heartBeat.Stop()

	for ingested := 0; ingested < len(c.job.Tasks); {
		select {
		case done := <-c.tasksDone:
			if err := c.ingestTask(done); err != nil {
				return err
			}
			ingested++

		case <-heartBeat.C:
			requeued := c.requeueExpiredTasks(time.Now())
			c.mutex.Lock()
			c.logger.Info(fmt.Sprintf("Tasks [Pending: %d] [Handed out: %d] [Ingested: %d/%d] | Workers: %d | Requeued: %d",
				len(c.pending), len(c.tasksHandedOut), ingested, len(c.job.Tasks), len(c.workers), requeued))
			c.mutex.Unlock()
		}
	}
	return nil
}

func (c *Coordinator) heartBeatInterval() time.Duration {
	interval := c.settings.TaskTimeout() / 4
	if interval > 30*time.Second {
		interval = 30 * time.Second
	}
	if interval < 100*time.Millisecond {
		interval = 100 * time.Millisecond
	}
	return interval
}

// requeueExpiredTasks puts tasks that have been out longer than the task timeout back in
// the queue and returns how many there were.
func (c *Coordinator) requeueExpiredTasks(now time.Time) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	requeued := 0
	for id, out := range c.tasksHandedOut {
		if now.Sub(out.since) < c.settings.TaskTimeout() {
			continue
		}
		c.logger.Warning(fmt.Sprintf("Task %d timed out at worker %s", id, out.worker))
		delete(c.tasksHandedOut, id)
		c.pending = append(c.pending, out.task)
		requeued++
	}
	return requeued
}

func (c *Coordinator) ingestTask(done task.Task) error {
	width, height := c.settings.RenderSettings.Width, c.settings.RenderSettings.Height
	if len(done.Pixels) != width*height {
		return fmt.Errorf("task %d returned %d pixels, want %d", done.ID, len(done.Pixels), width*height)
	}

	img, ok := c.images[done.ImageNumber]
	if !ok {
		// Need to create an image to save the incoming tiles
		img = &imageTask{
			Image:     image.NewRGBA(image.Rect(0, 0, width*int(c.job.Columns), height*int(c.job.Rows))),
			Path:      filepath.Join(c.settings.OutputPath, c.job.Names[done.ImageNumber]),
			TilesLeft: c.job.TilesPerImage(),
		}
		c.images[done.ImageNumber] = img
	}

	gray := &image.Gray{Pix: done.Pixels, Stride: width, Rect: image.Rect(0, 0, width, height)}
	tile := c.colorizer.Colorize(gray)
	origin := image.Pt(int(done.Tile.Column)*width, int(done.Tile.Row)*height)
	draw.Draw(img.Image, tile.Bounds().Add(origin), tile, image.Point{}, draw.Src)
	img.TilesLeft--

	// All tiles have been recorded so save the image
	if img.TilesLeft == 0 {
		var final image.Image = img.Image
		if c.settings.OutputWidth > 0 && c.settings.OutputHeight > 0 {
			final = misc.Resize(final, c.settings.OutputWidth, c.settings.OutputHeight)
		}
		if err := misc.SavePNG(img.Path, final); err != nil {
			return err
		}
		c.logger.Info(fmt.Sprintf("Saved image to %s", img.Path))

		// Remove the image to conserve memory
		delete(c.images, done.ImageNumber)
		c.imagesSaved++
	}
	return nil
}

func (c *Coordinator) RegisterWorker(workerAddress string, reply *bool) error {
	c.mutex.Lock()
	c.workers[workerAddress] = true
	c.mutex.Unlock()

	c.logger.Info(fmt.Sprintf("Worker joined: %s", workerAddress))
	*reply = true
	return nil
}

func (c *Coordinator) DeRegisterWorker(workerAddress string, reply *bool) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Put tasks this worker has not returned yet back into the queue
	for id, out := range c.tasksHandedOut {
		if out.worker == workerAddress {
			delete(c.tasksHandedOut, id)
			c.pending = append(c.pending, out.task)
		}
	}
	delete(c.workers, workerAddress)

	c.logger.Info(fmt.Sprintf("Worker left: %s", workerAddress))
	*reply = true
	return nil
}

func (c *Coordinator) GetSettings(workerAddress string, settings *julia.Settings) error {
	*settings = c.settings.RenderSettings
	return nil
}

func (c *Coordinator) GetTask(workerAddress string, reply *task.Task) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if len(c.completed) == len(c.job.Tasks) {
		return errors.New(AllTasksCompleted)
	}
	if len(c.pending) == 0 {
		return errors.New(NoTaskAvailable)
	}

	todo := c.pending[0]
	c.pending = c.pending[1:]
	todo.WorkerAddress = workerAddress
	c.tasksHandedOut[todo.ID] = handedOutTask{since: time.Now(), task: todo, worker: workerAddress}

	*reply = todo
	return nil
}

func (c *Coordinator) ReturnTask(done task.Task, reply *bool) error {
	width, height := c.settings.RenderSettings.Width, c.settings.RenderSettings.Height
	if len(done.Pixels) != width*height {
		return fmt.Errorf("task %d returned %d pixels, want %d", done.ID, len(done.Pixels), width*height)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	*reply = false
	if c.completed[done.ID] {
		// A requeued copy was already returned by someone else
		return nil
	}
	original, ok := c.findTask(done.ID)
	if !ok {
		return fmt.Errorf("task %d is not part of this job", done.ID)
	}
	if err := original.AddResult(done.Pixels); err != nil {
		return err
	}
	original.WorkerAddress = done.WorkerAddress

	c.completed[done.ID] = true
	delete(c.tasksHandedOut, done.ID)
	c.removePending(done.ID)
	c.tasksDone <- original

	*reply = true
	return nil
}

// findTask looks up an outstanding task, handed out or waiting in the queue.
func (c *Coordinator) findTask(id uint) (task.Task, bool) {
	if out, ok := c.tasksHandedOut[id]; ok {
		return out.task, true
	}
	for _, t := range c.pending {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

func (c *Coordinator) removePending(id uint) {
	for i, t := range c.pending {
		if t.ID == id {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}
