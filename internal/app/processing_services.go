package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"github.com/google/uuid"
)

const (
	uploadsDir = "uploads"
	resultsDir = "results"
	dirPerm    = 0o750
	filePerm   = 0o640
)

// processingService implements the ProcessingService interface
type processingService struct {
	processors   map[string]processing.Processor
	order        []string
	jobRepo      processing.JobRepository
	resourceRepo resources.ResourceRepository
	dispatcher   processing.Dispatcher
	storageDir   string
	logger       logger.Logger
}

// NewProcessingService creates a new instance of ProcessingService. Uploads and
// results are written below storageDir.
func NewProcessingService(
	processors []processing.Processor,
	jobRepo processing.JobRepository,
	resourceRepo resources.ResourceRepository,
	dispatcher processing.Dispatcher,
	storageDir string,
	logger logger.Logger,
) (processing.ProcessingService, error) {
	if storageDir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(storageDir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	s := &processingService{
		processors:   make(map[string]processing.Processor, len(processors)),
		jobRepo:      jobRepo,
		resourceRepo: resourceRepo,
		dispatcher:   dispatcher,
		storageDir:   storageDir,
		logger:       logger,
	}
	for _, p := range processors {
		name := p.Info().Name
		if _, dup := s.processors[name]; dup {
			return nil, fmt.Errorf("processing service %q registered twice", name)
		}
		s.processors[name] = p
		s.order = append(s.order, name)
	}
	return s, nil
}

func (s *processingService) Services() []processing.ServiceInfo {
	infos := make([]processing.ServiceInfo, len(s.order))
	for i, name := range s.order {
		infos[i] = s.processors[name].Info()
	}
	return infos
}

func (s *processingService) lookup(serviceName string) (processing.Processor, error) {
	p, ok := s.processors[serviceName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", processing.ErrUnknownService, serviceName)
	}
	return p, nil
}

func (s *processingService) ProcessResource(ctx context.Context, serviceName, resourceID, userID string) (*processing.Job, error) {
	p, err := s.lookup(serviceName)
	if err != nil {
		return nil, err
	}
	if !p.Info().AcceptsResource {
		return nil, fmt.Errorf("%w: %s does not run on stored resources", processing.ErrUnsupportedInput, serviceName)
	}

	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	job := newJob(serviceName, userID)
	job.ResourceID = resource.ID
	job.InputName = resource.ResourceName + ".xml"
	return s.submit(ctx, job)
}

func (s *processingService) SubmitData(ctx context.Context, serviceName, userID, fileName string, data io.Reader) (*processing.Job, error) {
	p, err := s.lookup(serviceName)
	if err != nil {
		return nil, err
	}
	if !p.Info().AcceptsUpload {
		return nil, fmt.Errorf("%w: %s does not accept uploads", processing.ErrUnsupportedInput, serviceName)
	}

	job := newJob(serviceName, userID)
	job.InputName = safeFileName(fileName)

	dir := filepath.Join(s.storageDir, uploadsDir, job.ID)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	job.InputPath = filepath.Join(dir, job.InputName)
	if err := writeFile(job.InputPath, data); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return s.submit(ctx, job)
}

func (s *processingService) submit(ctx context.Context, job *processing.Job) (*processing.Job, error) {
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	if err := s.dispatcher.Enqueue(job.ID); err != nil {
		s.finish(ctx, job, processing.JobFailed, err.Error())
		return nil, err
	}

	s.logger.Info("processing job queued", "job_id", job.ID, "service", job.ServiceName)
	return job, nil
}

func (s *processingService) GetJob(ctx context.Context, jobID, userID string) (*processing.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, fmt.Errorf("%w: %s", processing.ErrJobNotFound, jobID)
	}
	return job, nil
}

func (s *processingService) OpenResult(ctx context.Context, jobID, userID string) (io.ReadCloser, string, error) {
	job, err := s.GetJob(ctx, jobID, userID)
	if err != nil {
		return nil, "", err
	}
	if job.Status != processing.JobSucceeded {
		return nil, "", fmt.Errorf("%w: job is %s", processing.ErrResultNotReady, job.Status)
	}

	f, err := os.Open(job.OutputPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open result of job %s: %w", jobID, err)
	}
	return f, filepath.Base(job.OutputPath), nil
}

func (s *processingService) RunJob(ctx context.Context, jobID string) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status != processing.JobPending {
		return nil
	}

	p, err := s.lookup(job.ServiceName)
	if err != nil {
		s.finish(ctx, job, processing.JobFailed, err.Error())
		return err
	}

	job.Status = processing.JobRunning
	job.DateTimeUpdated = time.Now().UTC()
	if err := s.jobRepo.UpdateByID(ctx, job); err != nil {
		return err
	}

	in, err := s.loadInput(ctx, job)
	if err != nil {
		s.finish(ctx, job, processing.JobFailed, err.Error())
		return err
	}

	dir := filepath.Join(s.storageDir, resultsDir, job.ID)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		s.finish(ctx, job, processing.JobFailed, err.Error())
		return err
	}
	outputPath := filepath.Join(dir, safeFileName(p.ResultName(in.Name)))

	message, err := s.process(ctx, p, in, outputPath)
	if err != nil {
		_ = os.Remove(outputPath)
		s.finish(ctx, job, processing.JobFailed, err.Error())
		return err
	}

	job.OutputPath = outputPath
	s.finish(ctx, job, processing.JobSucceeded, message)
	return nil
}

func (s *processingService) process(ctx context.Context, p processing.Processor, in *processing.Input, outputPath string) (string, error) {
	out, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return "", fmt.Errorf("failed to create result file: %w", err)
	}

	message, err := p.Process(ctx, in, out)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to write result file: %w", closeErr)
	}
	return message, err
}

func (s *processingService) loadInput(ctx context.Context, job *processing.Job) (*processing.Input, error) {
	if job.ResourceID != "" {
		resource, err := s.resourceRepo.GetByID(ctx, job.ResourceID)
		if err != nil {
			return nil, err
		}
		return &processing.Input{Name: job.InputName, Data: []byte(resource.MetadataXML)}, nil
	}

	data, err := os.ReadFile(job.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input of job %s: %w", job.ID, err)
	}
	return &processing.Input{Name: job.InputName, Data: data}, nil
}

// finish stores the final state of a job. Storage failures are logged since the job outcome is already decided.
func (s *processingService) finish(ctx context.Context, job *processing.Job, status processing.JobStatus, message string) {
	job.Status = status
	job.Message = message
	job.DateTimeUpdated = time.Now().UTC()
	if err := s.jobRepo.UpdateByID(ctx, job); err != nil {
		s.logger.Error("failed to store job state", "job_id", job.ID, "status", string(status), "error", err.Error())
		return
	}
	s.logger.Info("processing job finished", "job_id", job.ID, "status", string(status))
}

func newJob(serviceName, userID string) *processing.Job {
	return &processing.Job{
		ID:              uuid.NewString(),
		ServiceName:     serviceName,
		UserID:          userID,
		Status:          processing.JobPending,
		DateTimeCreated: time.Now().UTC(),
	}
}

// safeFileName keeps the base name of an uploaded file and replaces anything that could escape a directory
func safeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return "input"
	}
	return name
}

func writeFile(path string, data io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, filePerm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
