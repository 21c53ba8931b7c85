package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/segmentio/ksuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/todaku-reader/todaku-api/internal/domain"
)

const tracerName = "github.com/todaku-reader/todaku-api/internal/generation"

// Default retry settings.
const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = time.Second
)

// RetryPolicy bounds the attempts of one generation run. Backoff returns the
// delay to wait after the given failed attempt (1-based).
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// FixedBackoff waits the same delay after every failed attempt.
func FixedBackoff(d time.Duration) func(int) time.Duration {
	return func(int) time.Duration { return d }
}

// DefaultRetryPolicy allows three attempts one second apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, Backoff: FixedBackoff(DefaultBackoff)}
}

// AttemptEvent describes a state change of one attempt. Err is nil when the
// attempt starts or succeeds.
type AttemptEvent struct {
	RunID       string
	Attempt     int
	MaxAttempts int
	Elapsed     time.Duration
	Done        bool
	Err         error
}

// AttemptHook observes attempts, for example to show progress. It is advisory
// and must not block.
type AttemptHook func(AttemptEvent)

// Orchestrator drives prompt building, model invocation, parsing and
// validation in a bounded retry loop.
type Orchestrator struct {
	generator Generator
	policy    RetryPolicy
	annotator ReadingAnnotator
	hook      AttemptHook
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(o *Orchestrator) { o.policy = p }
}

// WithLogger sets the logger used for attempt diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithReadingAnnotator fills empty vocabulary readings on validated lessons.
func WithReadingAnnotator(a ReadingAnnotator) Option {
	return func(o *Orchestrator) { o.annotator = a }
}

// WithAttemptHook registers an observer for attempt progress.
func WithAttemptHook(h AttemptHook) Option {
	return func(o *Orchestrator) { o.hook = h }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = t }
}

// NewOrchestrator creates an Orchestrator around the given generator.
func NewOrchestrator(generator Generator, opts ...Option) (*Orchestrator, error) {
	if generator == nil {
		return nil, fmt.Errorf("%w: generator cannot be nil", ErrInvalidConfig)
	}

	o := &Orchestrator{
		generator: generator,
		policy:    DefaultRetryPolicy(),
		logger:    slog.Default(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.policy.MaxAttempts < 1 {
		return nil, fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrInvalidConfig, o.policy.MaxAttempts)
	}
	if o.policy.Backoff == nil {
		o.policy.Backoff = FixedBackoff(DefaultBackoff)
	}
	o.logger = o.logger.With("component", "generation_orchestrator")

	return o, nil
}

// GenerateLesson produces a validated lesson for the profile.
//
// Each attempt rebuilds the prompt, calls the generator, parses and validates
// the reply. Invocation, parse and structural failures are retried until the
// policy's attempt budget is spent, after which an *ExhaustedRetriesError
// carrying the last cause is returned. If ctx ends first the in-flight call
// is abandoned and a *CancelledError is returned instead.
func (o *Orchestrator) GenerateLesson(
	ctx context.Context,
	profile domain.DifficultyProfile,
) (*domain.Lesson, error) {
	profile = profile.WithDefaults()
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	runID := ksuid.New().String()
	log := o.logger.With(
		"run_id", runID,
		"topic", profile.Topic,
		"wanikani_level", profile.WaniKaniLevel,
		"genki_chapter", profile.GenkiChapter,
		"tadoku_level", profile.TadokuLevel.String(),
		"length", string(profile.Length),
	)

	ctx, span := o.tracer.Start(ctx, "generation.GenerateLesson", trace.WithAttributes(
		attribute.String("generation.run_id", runID),
		attribute.Int("generation.max_attempts", o.policy.MaxAttempts),
	))
	defer span.End()

	start := time.Now()
	var (
		lesson  *domain.Lesson
		attempt int
		lastErr error
	)

	err := retry.Do(
		func() error {
			if err := ctx.Err(); err != nil {
				return retry.Unrecoverable(err)
			}
			attempt++
			o.notify(AttemptEvent{RunID: runID, Attempt: attempt, MaxAttempts: o.policy.MaxAttempts, Elapsed: time.Since(start)})

			l, err := o.runAttempt(ctx, profile, attempt, log)
			if err != nil {
				lastErr = err
				o.notify(AttemptEvent{
					RunID:       runID,
					Attempt:     attempt,
					MaxAttempts: o.policy.MaxAttempts,
					Elapsed:     time.Since(start),
					Done:        true,
					Err:         err,
				})
				if ctx.Err() != nil || !IsRetryable(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			lesson = l
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(o.policy.MaxAttempts)),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return o.policy.Backoff(int(n) + 1)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("lesson generation attempt failed",
				"attempt", n+1,
				"max_attempts", o.policy.MaxAttempts,
				"error", err)
		}),
	)

	if err == nil {
		span.SetAttributes(
			attribute.Int("generation.attempts", attempt),
			attribute.Int("generation.warnings", len(lesson.Warnings)),
		)
		o.notify(AttemptEvent{
			RunID:       runID,
			Attempt:     attempt,
			MaxAttempts: o.policy.MaxAttempts,
			Elapsed:     time.Since(start),
			Done:        true,
		})
		if len(lesson.Warnings) > 0 {
			log.Warn("lesson generated with consistency warnings",
				"attempts", attempt,
				"warnings", lesson.Warnings)
		} else {
			log.Info("lesson generated", "attempts", attempt, "duration", time.Since(start))
		}
		return lesson, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Info("lesson generation cancelled", "attempt", attempt, "error", ctxErr)
		span.SetStatus(codes.Error, "cancelled")
		return nil, &CancelledError{Attempt: attempt, Err: ctxErr}
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, "generation failed")

	if lastErr == nil || !IsRetryable(lastErr) {
		log.Error("lesson generation failed", "attempt", attempt, "error", err)
		return nil, err
	}

	log.Error("lesson generation exhausted attempts",
		"attempts", attempt,
		"last_error", lastErr)
	return nil, &ExhaustedRetriesError{Attempts: attempt, LastErr: lastErr}
}

// runAttempt performs one full pipeline pass.
func (o *Orchestrator) runAttempt(
	ctx context.Context,
	profile domain.DifficultyProfile,
	attempt int,
	log *slog.Logger,
) (*domain.Lesson, error) {
	ctx, span := o.tracer.Start(ctx, "generation.attempt", trace.WithAttributes(
		attribute.Int("generation.attempt", attempt),
	))
	defer span.End()

	prompt, err := BuildPrompt(profile)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	reply, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		var invocation *InvocationError
		if !errors.As(err, &invocation) {
			err = &InvocationError{Err: err}
		}
		span.RecordError(err)
		return nil, err
	}

	candidate, err := ParseResponse(reply)
	if err != nil {
		log.Debug("unparseable model reply", "attempt", attempt, "reply_length", len(reply))
		span.RecordError(err)
		return nil, err
	}
	if candidate.Repaired {
		log.Debug("model reply needed whitespace repair", "attempt", attempt)
	}

	lesson, err := Validate(candidate)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	o.annotate(lesson)
	return lesson, nil
}

// annotate fills empty vocabulary readings.
func (o *Orchestrator) annotate(lesson *domain.Lesson) {
	if o.annotator == nil {
		return
	}
	for i := range lesson.Vocabulary {
		if lesson.Vocabulary[i].Reading != "" {
			continue
		}
		lesson.Vocabulary[i].Reading = o.annotator.Reading(lesson.Vocabulary[i].Word)
	}
}

func (o *Orchestrator) notify(e AttemptEvent) {
	if o.hook != nil {
		o.hook(e)
	}
}
