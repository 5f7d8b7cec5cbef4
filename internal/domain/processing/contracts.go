package processing

import (
	"context"
	"io"
)

// Input is the material a processor works on
type Input struct {
	Name string
	Data []byte
}

// Processor transforms an input document into a result file
type Processor interface {
	Info() ServiceInfo
	// Process writes the result to out and returns a short human readable message.
	Process(ctx context.Context, in *Input, out io.Writer) (string, error)
	// ResultName is the download file name for an input name.
	ResultName(inputName string) string
}

// ProcessingService defines the operations of the processing area.
type ProcessingService interface {
	JobRunner

	// Services lists the registered processors.
	Services() []ServiceInfo

	// ProcessResource queues a job running a service on a stored resource.
	ProcessResource(ctx context.Context, serviceName, resourceID, userID string) (*Job, error)

	// SubmitData stores an uploaded file and queues a job running a service on it.
	SubmitData(ctx context.Context, serviceName, userID, fileName string, data io.Reader) (*Job, error)

	// GetJob returns a job of the user.
	GetJob(ctx context.Context, jobID, userID string) (*Job, error)

	// OpenResult opens the result file of a succeeded job for download.
	OpenResult(ctx context.Context, jobID, userID string) (io.ReadCloser, string, error)
}

// JobRunner executes a queued job
type JobRunner interface {
	// RunJob processes a pending job and stores its outcome. Jobs that already left the pending state are skipped.
	RunJob(ctx context.Context, jobID string) error
}

// Dispatcher runs queued jobs in the background
type Dispatcher interface {
	// Enqueue hands a job to a worker without blocking. It returns ErrQueueFull when saturated.
	Enqueue(jobID string) error
}

// JobRepository defines the interface for Job persistence
type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, jobID string) (*Job, error)
	UpdateByID(ctx context.Context, job *Job) error
	ListByUser(ctx context.Context, userID string) ([]*Job, error)
}
