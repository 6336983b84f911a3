// Package sentiment runs the detached analyze-and-publish flow for rating
// writes. Runs are best effort: failures are logged and never retried, and
// nothing is reported back to the HTTP request that triggered them.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"alloydb-shop/api/internal/logger"
	"alloydb-shop/api/internal/metrics"
	"alloydb-shop/api/internal/model"
)

// Analyzer asks the generative AI service for a JSON answer.
type Analyzer interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Publisher delivers an opaque payload to the negative ratings topic.
type Publisher interface {
	Publish(ctx context.Context, data []byte) (string, error)
}

// Recorder counts finished runs by outcome.
type Recorder interface {
	PipelineRun(outcome string)
}

type Pipeline struct {
	analyzer  Analyzer
	publisher Publisher
	recorder  Recorder
	logger    *zap.Logger
	now       func() time.Time

	wg sync.WaitGroup
}

type Option func(*Pipeline)

func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithClock overrides the publish timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

func New(analyzer Analyzer, publisher Publisher, log *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		analyzer:  analyzer,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dispatch starts a run for rating in its own goroutine and returns at once.
// The run keeps ctx values (the request logger) but not its cancellation.
func (p *Pipeline) Dispatch(ctx context.Context, rating model.Rating) {
	ctx = context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				p.loggerFor(ctx).Error("sentiment pipeline panicked",
					zap.Int64("rating_id", rating.ID),
					zap.Any("panic", rec),
					zap.Stack("stacktrace"),
				)
			}
		}()

		if err := p.Process(ctx, rating); err != nil {
			p.loggerFor(ctx).Error("sentiment pipeline failed",
				zap.Int64("rating_id", rating.ID),
				zap.Error(err),
			)
		}
	}()
}

// Process analyzes rating and publishes an event if it is negative.
func (p *Pipeline) Process(ctx context.Context, rating model.Rating) error {
	raw, err := p.analyzer.GenerateJSON(ctx, buildPrompt(rating))
	if err != nil {
		p.record(metrics.OutcomeAnalysisFailed)
		return fmt.Errorf("failed to analyze rating: %w", err)
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		p.record(metrics.OutcomeInvalidVerdict)
		return err
	}

	log := p.loggerFor(ctx).With(zap.Int64("rating_id", rating.ID))
	if !*verdict.IsNegative {
		p.record(metrics.OutcomePositive)
		log.Debug("rating is not negative")
		return nil
	}

	event := model.NegativeRatingEvent{
		RatingID:       rating.ID,
		UserID:         rating.UserID,
		Value:          rating.Value,
		Comments:       rating.Comments,
		SuggestedReply: verdict.SuggestedReply,
		Timestamp:      p.now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.record(metrics.OutcomePublishFailed)
		return fmt.Errorf("failed to encode event: %w", err)
	}

	messageID, err := p.publisher.Publish(ctx, data)
	if err != nil {
		p.record(metrics.OutcomePublishFailed)
		return err
	}

	p.record(metrics.OutcomePublished)
	log.Info("negative rating published", zap.String("message_id", messageID))
	return nil
}

// Wait blocks until all dispatched runs finish or ctx is done.
func (p *Pipeline) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pipeline) record(outcome string) {
	if p.recorder != nil {
		p.recorder.PipelineRun(outcome)
	}
}

func (p *Pipeline) loggerFor(ctx context.Context) *zap.Logger {
	return logger.FromContextOr(ctx, p.logger)
}
