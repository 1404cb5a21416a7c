package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/vanshika/worldsporta/backend/internal/domain"
	"github.com/vanshika/worldsporta/backend/internal/repository"
)

// TaskError accumulates multiple errors produced during a bulk import.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// BulkImporter writes whole collections into the namespace using a worker pool,
// one task per collection slot.
type BulkImporter struct {
	repo    *repository.Repository
	workers int
	logger  *slog.Logger
}

// NewBulkImporter creates a BulkImporter with the provided concurrency.
func NewBulkImporter(repo *repository.Repository, workers int, logger *slog.Logger) *BulkImporter {
	if workers <= 0 {
		workers = 4
	}
	return &BulkImporter{
		repo:    repo,
		workers: workers,
		logger:  logger,
	}
}

// Import overwrites every persisted collection slot with the contents of snap.
func (bi *BulkImporter) Import(ctx context.Context, snap domain.Snapshot) error {
	tasks := bi.repo.ImportTasks(snap)
	return bi.run(ctx, len(tasks), func(idx int) error {
		task := tasks[idx]
		if err := task.Run(ctx); err != nil {
			return fmt.Errorf("import %s: %w", task.Key, err)
		}
		bi.logger.Info("collection imported", "key", task.Key, "count", task.Count)
		return nil
	})
}

func (bi *BulkImporter) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				errCh <- err
			}
		}
	}

	for i := 0; i < min(bi.workers, total); i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return err
	}

	var taskErr TaskError
	for err := range errCh {
		taskErr.append(err)
	}
	return taskErr.asError()
}
