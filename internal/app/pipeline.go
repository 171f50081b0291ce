package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/yourusername/vidfetch-go/internal/domain"
	"github.com/yourusername/vidfetch-go/internal/infrastructure"
	"go.uber.org/zap"
)

// videoResolver is the registry surface the pipeline consumes
type videoResolver interface {
	Resolve(ctx context.Context, req *domain.VideoRequest) (*domain.VideoInfo, error)
}

// outputPather derives the destination file for a resolved video
type outputPather interface {
	OutputPath(info *domain.VideoInfo) (string, error)
}

// Pipeline runs the acquisition flow for one URL at a time per call:
// validate, classify, resolve, stream to disk, emit events. Every
// DownloadVideo call gets its own goroutine and its own job state.
type Pipeline struct {
	registry   videoResolver
	downloader domain.VideoDownloader
	store      outputPather
	repo       domain.DownloadRepository
	notifier   *infrastructure.NotificationService
	logger     *zap.Logger

	mu       sync.RWMutex
	observer domain.ProgressObserver

	sinkMu sync.RWMutex
	sink   func(domain.ProgressEvent)

	wg sync.WaitGroup
}

// NewPipeline creates the acquisition pipeline
func NewPipeline(
	registry videoResolver,
	downloader domain.VideoDownloader,
	store outputPather,
	repo domain.DownloadRepository,
	notifier *infrastructure.NotificationService,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		registry:   registry,
		downloader: downloader,
		store:      store,
		repo:       repo,
		notifier:   notifier,
		logger:     logger,
	}
}

// SetObserver registers the single event sink for subsequent jobs.
// Passing nil disables delivery; in-flight downloads continue to
// completion silently.
func (p *Pipeline) SetObserver(observer domain.ProgressObserver) {
	p.mu.Lock()
	p.observer = observer
	p.mu.Unlock()
}

// SetEventSink registers a broadcast hook that mirrors every job
// event, independent of the observer. Used by the websocket feed.
func (p *Pipeline) SetEventSink(sink func(domain.ProgressEvent)) {
	p.sinkMu.Lock()
	p.sink = sink
	p.sinkMu.Unlock()
}

// ValidateURL is exposed for callers that want to pre-check input
// without starting a job
func (p *Pipeline) ValidateURL(url string) domain.ValidationResult {
	return domain.ValidateURL(url)
}

// ClassifyPlatform is exposed for callers displaying platform hints
func (p *Pipeline) ClassifyPlatform(url string) domain.Platform {
	return domain.DetectPlatform(url)
}

// DownloadVideo starts one acquisition job and returns immediately.
// Events are delivered to the registered observer from the worker
// goroutine. Returns the job ID and a validation result; an invalid
// URL starts no job and produces no events. Unknown hosts are
// accepted and run as generic downloads; the strict platform check
// stays in ValidateURL for callers that pre-check input.
func (p *Pipeline) DownloadVideo(url, quality string) (string, domain.ValidationResult) {
	if result := domain.ValidateRequest(url); !result.Valid {
		p.logger.Warn("rejected download request",
			zap.String("url", url),
			zap.String("reason", result.Message))
		return "", result
	}

	download := domain.NewDownload(url, quality)
	if err := p.repo.Create(download); err != nil {
		p.logger.Error("failed to record download", zap.Error(err))
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(download)
	}()

	return download.ID, domain.ValidationResult{Valid: true, Message: "URL is valid"}
}

// Wait blocks until every in-flight job has emitted its terminal
// event. Intended for shutdown and tests.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// run executes a single job end to end on the worker goroutine
func (p *Pipeline) run(download *domain.Download) {
	ctx := context.Background()
	emitter := newJobEmitter(p, download.ID)

	emitter.Start(download.URL)

	req := &domain.VideoRequest{URL: download.URL, Quality: download.Quality}

	info, err := p.registry.Resolve(ctx, req)
	if err != nil {
		p.fail(download, emitter, err)
		return
	}

	destPath, err := p.store.OutputPath(info)
	if err != nil {
		p.fail(download, emitter, err)
		return
	}

	download.MarkDownloading(info.DownloadURL)
	if err := p.repo.Update(download); err != nil {
		p.logger.Error("failed to update download record", zap.Error(err))
	}

	err = p.downloader.Download(ctx, info.DownloadURL, destPath, func(percent int) {
		emitter.Progress(percent)
		if percent != download.Percent {
			download.UpdateProgress(percent)
			// persisted so pollers see progress without the websocket
			if err := p.repo.Update(download); err != nil {
				p.logger.Debug("failed to persist progress", zap.Error(err))
			}
		}
	})
	if err != nil {
		p.fail(download, emitter, err)
		return
	}

	var size int64
	if fi, statErr := os.Stat(destPath); statErr == nil {
		size = fi.Size()
	}

	download.MarkCompleted(destPath, size)
	if err := p.repo.Update(download); err != nil {
		p.logger.Error("failed to update download record", zap.Error(err))
	}

	p.logger.Info("download completed",
		zap.String("id", download.ID),
		zap.String("path", destPath),
		zap.Int64("size", size))

	emitter.Success(destPath)
	p.notifier.NotifyDownloadCompleted(download.URL, download.Platform)
}

// fail records and reports a terminal failure exactly once
func (p *Pipeline) fail(download *domain.Download, emitter *jobEmitter, cause error) {
	pe := domain.Classify(cause)

	download.MarkFailed(pe.Message)
	if err := p.repo.Update(download); err != nil {
		p.logger.Error("failed to update download record", zap.Error(err))
	}

	p.logger.Error("download failed",
		zap.String("id", download.ID),
		zap.String("url", download.URL),
		zap.String("kind", string(pe.Kind)),
		zap.Error(cause))

	emitter.Error(pe.Message)
	p.notifier.NotifyDownloadFailed(download.URL, download.Platform, pe.Message)
}

// currentObserver re-reads the observer on every emission so clearing
// it mid-job takes effect immediately
func (p *Pipeline) currentObserver() domain.ProgressObserver {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.observer
}

func (p *Pipeline) publish(event domain.ProgressEvent) {
	p.sinkMu.RLock()
	sink := p.sink
	p.sinkMu.RUnlock()
	if sink != nil {
		sink(event)
	}
}

// jobEmitter enforces the per-job event contract: Start first and at
// most once, non-decreasing progress, exactly one terminal event, and
// nothing after terminal.
type jobEmitter struct {
	pipeline *Pipeline
	jobID    string

	mu          sync.Mutex
	started     bool
	terminal    bool
	lastPercent int
}

func newJobEmitter(p *Pipeline, jobID string) *jobEmitter {
	return &jobEmitter{pipeline: p, jobID: jobID, lastPercent: -1}
}

func (e *jobEmitter) Start(url string) {
	e.mu.Lock()
	if e.started || e.terminal {
		e.mu.Unlock()
		return
	}
	e.started = true
	e.mu.Unlock()

	if obs := e.pipeline.currentObserver(); obs != nil {
		obs.OnStart(url)
	}
	e.pipeline.publish(domain.ProgressEvent{
		JobID: e.jobID,
		Type:  domain.EventStart,
		URL:   url,
	})
}

func (e *jobEmitter) Progress(percent int) {
	if percent < 0 || percent > 100 {
		return
	}

	e.mu.Lock()
	if e.terminal || percent < e.lastPercent {
		e.mu.Unlock()
		return
	}
	e.lastPercent = percent
	e.mu.Unlock()

	if obs := e.pipeline.currentObserver(); obs != nil {
		obs.OnProgress(percent)
	}
	e.pipeline.publish(domain.ProgressEvent{
		JobID:   e.jobID,
		Type:    domain.EventProgress,
		Percent: percent,
	})
}

func (e *jobEmitter) Success(path string) {
	e.mu.Lock()
	if e.terminal {
		e.mu.Unlock()
		return
	}
	e.terminal = true
	e.mu.Unlock()

	if obs := e.pipeline.currentObserver(); obs != nil {
		obs.OnSuccess(path)
	}
	e.pipeline.publish(domain.ProgressEvent{
		JobID: e.jobID,
		Type:  domain.EventSuccess,
		Path:  path,
	})
}

func (e *jobEmitter) Error(message string) {
	e.mu.Lock()
	if e.terminal {
		e.mu.Unlock()
		return
	}
	e.terminal = true
	e.mu.Unlock()

	if obs := e.pipeline.currentObserver(); obs != nil {
		obs.OnError(message)
	}
	e.pipeline.publish(domain.ProgressEvent{
		JobID:   e.jobID,
		Type:    domain.EventError,
		Message: message,
	})
}

// History returns the most recent download records
func (p *Pipeline) History(limit int) ([]*domain.Download, error) {
	if limit <= 0 {
		limit = 50
	}
	downloads, err := p.repo.FindRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("load download history: %w", err)
	}
	return downloads, nil
}

// Stats returns aggregate download statistics
func (p *Pipeline) Stats() (*domain.DownloadStats, error) {
	return p.repo.GetStats()
}

// Job returns one download record by ID
func (p *Pipeline) Job(id string) (*domain.Download, error) {
	return p.repo.FindByID(id)
}
