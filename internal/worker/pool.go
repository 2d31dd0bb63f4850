// Package worker runs rizz analyses off the request path.
// Each accepted job gets a simulated progress tracker that the loading page
// polls; the pool sheds load when its queue is full and drains on shutdown.

package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/rizzcalc/rizz-web/internal/backend"
	"github.com/rizzcalc/rizz-web/internal/models"
	"github.com/rizzcalc/rizz-web/internal/progress"
)

// Prometheus metrics
var (
	jobsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rizz_jobs_submitted_total",
		Help: "Total number of analysis jobs accepted",
	})

	jobsSucceeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rizz_jobs_succeeded_total",
		Help: "Total number of analysis jobs that produced a result",
	})

	jobsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rizz_jobs_failed_total",
		Help: "Total number of analysis jobs that failed",
	})

	jobsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rizz_jobs_load_shed_total",
		Help: "Total number of analysis jobs rejected because the queue was full",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rizz_worker_queue_depth",
		Help: "Current depth of the analysis queue",
	})

	jobDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rizz_job_duration_seconds",
		Help:    "Time from job start to result",
		Buckets: prometheus.DefBuckets,
	})
)

// ErrQueueFull is returned by Submit when the pool sheds load.
var ErrQueueFull = errors.New("analysis queue full")

// ErrPoolStopped is returned by Submit after Stop.
var ErrPoolStopped = errors.New("analysis pool stopped")

// errPanicked replaces a recovered panic
var errPanicked = errors.New("analysis panicked")

// Failure reasons reported on failed jobs
const (
	ReasonBackend  = "backend"
	ReasonTimeout  = "timeout"
	ReasonStopped  = "stopped"
	ReasonInternal = "internal"
)

// Job states
const (
	StatePending = "pending"
	StateRunning = "running"
	StateDone    = "done"
	StateFailed  = "failed"
)

// Analyzer performs the actual scoring call
type Analyzer interface {
	Analyze(ctx context.Context, imageURL, nickname string) (*models.StoredResult, error)
}

// Job is one queued analysis
type Job struct {
	ID       string
	ImageURL string
	Nickname string

	tracker   *progress.Tracker
	submitted time.Time

	mu       sync.Mutex
	state    string
	resultID string
	errMsg   string
	reason   string
	finished time.Time
}

// Status snapshots the job for the loading page.
func (j *Job) Status() models.JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return models.JobStatus{
		ID:       j.ID,
		State:    j.state,
		Progress: j.tracker.Percent(),
		ResultID: j.resultID,
		Error:    j.errMsg,
		Reason:   j.reason,
	}
}

func (j *Job) setState(state string) {
	j.mu.Lock()
	j.state = state
	j.mu.Unlock()
}

func (j *Job) finish(resultID string, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err != nil {
		j.state = StateFailed
		j.errMsg = err.Error()
		j.reason = failureReason(err)
	} else {
		j.state = StateDone
	}
	j.resultID = resultID
	j.finished = time.Now()
}

// failureReason lets the web layer pick its wording without parsing errors
func failureReason(err error) string {
	switch {
	case backend.IsAPIError(err):
		return ReasonBackend
	case errors.Is(err, ErrPoolStopped), errors.Is(err, context.Canceled):
		return ReasonStopped
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	default:
		return ReasonInternal
	}
}

func (j *Job) expired(now time.Time, ttl time.Duration) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.finished.IsZero() {
		return false
	}
	return now.Sub(j.finished) > ttl
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount      int
	QueueSize        int
	JobTTL           time.Duration
	JobTimeout       time.Duration
	ProgressInterval time.Duration
	ProgressStep     int
	Analyzer         Analyzer
	Logger           *zap.Logger
}

// Pool manages a pool of workers for async analyses
type Pool struct {
	config   PoolConfig
	jobQueue chan *Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger

	mu      sync.RWMutex
	jobs    map[string]*Job
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 10 * time.Minute
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 2 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		config:   cfg,
		jobQueue: make(chan *Job, cfg.QueueSize),
		ctx:      ctx,
		cancel:   cancel,
		logger:   cfg.Logger.Sugar(),
		jobs:     make(map[string]*Job),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.janitor()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
	)
}

// Stop gracefully shuts down the worker pool. Queued jobs that never
// started are failed; running jobs see their context cancelled.
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

// Submit queues an analysis and returns its job without blocking.
func (p *Pool) Submit(imageURL, nickname string) (*Job, error) {
	job := &Job{
		ID:        uuid.NewString(),
		ImageURL:  imageURL,
		Nickname:  nickname,
		tracker:   progress.NewTracker(p.config.ProgressInterval, p.config.ProgressStep, nil),
		submitted: time.Now(),
		state:     StatePending,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return nil, ErrPoolStopped
	}

	select {
	case p.jobQueue <- job:
	default:
		jobsLoadShed.Inc()
		p.logger.Warnw("Analysis queue full, shedding job", "nickname", nickname)
		return nil, ErrQueueFull
	}

	p.jobs[job.ID] = job
	// Progress starts as soon as the user lands on the loading page
	job.tracker.Start(p.ctx)
	jobsSubmitted.Inc()
	return job, nil
}

// Get returns a job by ID
func (p *Pool) Get(id string) (*Job, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	job, ok := p.jobs[id]
	return job, ok
}

// Enqueue submits an analysis and returns only the job ID.
func (p *Pool) Enqueue(imageURL, nickname string) (string, error) {
	job, err := p.Submit(imageURL, nickname)
	if err != nil {
		return "", err
	}
	return job.ID, nil
}

// Status snapshots a job by ID for the loading page.
func (p *Pool) Status(id string) (models.JobStatus, bool) {
	job, ok := p.Get(id)
	if !ok {
		return models.JobStatus{}, false
	}
	return job.Status(), true
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker processes jobs from the queue one at a time
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobQueue {
		if p.ctx.Err() != nil {
			job.tracker.Stop()
			job.finish("", ErrPoolStopped)
			continue
		}
		p.process(id, job)
	}
}

func (p *Pool) process(workerID int, job *Job) {
	job.setState(StateRunning)
	start := time.Now()

	ctx, cancel := context.WithTimeout(p.ctx, p.config.JobTimeout)
	defer cancel()

	stored, err := p.run(ctx, job)
	jobDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		job.tracker.Stop()
		job.finish("", err)
		jobsFailed.Inc()
		p.logger.Warnw("Analysis job failed", "worker", workerID, "job", job.ID, "error", err)
		return
	}

	job.tracker.Complete()
	job.finish(stored.ID, nil)
	jobsSucceeded.Inc()
	p.logger.Infow("Analysis job done", "worker", workerID, "job", job.ID, "result", stored.ID, "duration", time.Since(start))
}

func (p *Pool) run(ctx context.Context, job *Job) (stored *models.StoredResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorw("Analysis job panic", "job", job.ID, "error", r)
			err = errPanicked
		}
	}()
	return p.config.Analyzer.Analyze(ctx, job.ImageURL, job.Nickname)
}

// janitor reports queue depth and forgets finished jobs after JobTTL
func (p *Pool) janitor() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
			p.evictExpired(time.Now())
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool) evictExpired(now time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	evicted := 0
	for id, job := range p.jobs {
		if job.expired(now, p.config.JobTTL) {
			delete(p.jobs, id)
			evicted++
		}
	}
	return evicted
}
