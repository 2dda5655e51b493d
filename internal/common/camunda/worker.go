// internal/common/camunda/worker.go

package camunda

import (
	"time"

	"healthquote-funnel/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler completes or fails the job itself through the JobClient.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// WorkerOptions configures one job worker subscription.
type WorkerOptions struct {
	JobType       string
	Name          string
	MaxJobsActive int
	Timeout       time.Duration
}

type Worker struct {
	worker worker.JobWorker
	logger logger.Logger
	opts   WorkerOptions
}

// OpenWorker subscribes handler to opts.JobType on client.
func OpenWorker(client zbc.Client, opts WorkerOptions, handler JobHandler, log logger.Logger) *Worker {
	if opts.MaxJobsActive <= 0 {
		opts.MaxJobsActive = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Name == "" {
		opts.Name = opts.JobType
	}

	jobWorker := client.NewJobWorker().
		JobType(opts.JobType).
		Handler(handler.Handle).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Name(opts.Name).
		Open()

	log.Info("job worker opened", map[string]interface{}{
		"jobType":       opts.JobType,
		"maxJobsActive": opts.MaxJobsActive,
		"timeout":       opts.Timeout.String(),
	})

	return &Worker{worker: jobWorker, logger: log, opts: opts}
}

// Close stops polling and waits for in-flight jobs.
func (w *Worker) Close() {
	w.logger.Info("stopping job worker", map[string]interface{}{"jobType": w.opts.JobType})
	w.worker.Close()
	w.worker.AwaitClose()
}
