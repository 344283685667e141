package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/debtofwar/tracker/app/cfg"
	"github.com/debtofwar/tracker/app/database"
	"github.com/debtofwar/tracker/app/feed"
	"github.com/debtofwar/tracker/app/metrics"
	"github.com/debtofwar/tracker/app/store"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Archive pruning runs once a day; ingest runs every tick.
const pruneInterval = 24 * time.Hour

type Scheduler struct {
	sources     []feed.Source
	fetcher     *feed.Fetcher
	store       *store.Store
	eventRepo   database.EventRepository
	runRepo     database.RunRepository
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
	lastPrune   time.Time
}

func NewScheduler(sources []feed.Source, fetcher *feed.Fetcher, st *store.Store,
	eventRepo database.EventRepository, runRepo database.RunRepository) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		sources:     sources,
		fetcher:     fetcher,
		store:       st,
		eventRepo:   eventRepo,
		runRepo:     runRepo,
		interval:    time.Duration(cfg.FetchInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()

}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueStartupTasks() {
	slog.Debug("Scheduling startup tasks", "sources", len(s.sources))

	ingestTask := NewIngestTask(s.sources, s.fetcher, s.store, s.eventRepo, s.runRepo)
	if err := s.EnqueueTask(ingestTask); err != nil {
		slog.Warn("Failed to enqueue IngestTask", "error", err)
	}

	pruneTask := NewPruneArchiveTask(s.eventRepo)
	if err := s.EnqueueTask(pruneTask); err != nil {
		slog.Warn("Failed to enqueue PruneArchiveTask", "error", err)
	}
	s.lastPrune = time.Now()
}

func (s *Scheduler) enqueueTasks() {
	ingestTask := NewIngestTask(s.sources, s.fetcher, s.store, s.eventRepo, s.runRepo)
	if err := s.EnqueueTask(ingestTask); err != nil {
		slog.Warn("Failed to enqueue IngestTask", "error", err)
	}

	// lastPrune is only touched from the ticker goroutine.
	if time.Since(s.lastPrune) >= pruneInterval {
		pruneTask := NewPruneArchiveTask(s.eventRepo)
		if err := s.EnqueueTask(pruneTask); err != nil {
			slog.Warn("Failed to enqueue PruneArchiveTask", "error", err)
			return
		}
		s.lastPrune = time.Now()
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if task.GetType() == TaskTypeIngest {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.ObserveRun(status, task.GetDuration())
	}

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "task", task.GetName(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
