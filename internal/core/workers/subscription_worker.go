package workers

import (
	"context"
	"time"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/observability"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

const (
	defaultQueueSize  = 100
	defaultJobTimeout = 30 * time.Second

	OutcomeSynced = "synced"
	OutcomeFailed = "failed"
)

// MarketingClient pushes a subscriber and its tags to the external list.
type MarketingClient interface {
	SyncSubscriber(ctx context.Context, subscriber *domain.EmailSubscriber) error
}

type SubscriptionJob struct {
	Subscriber domain.EmailSubscriber
}

// SubscriptionWorker syncs stored subscribers to the marketing provider off
// the request path. A full queue drops the job; the local record stays the
// source of truth.
type SubscriptionWorker struct {
	client     MarketingClient
	log        *logger.Logger
	metrics    *observability.Metrics
	jobs       chan SubscriptionJob
	jobTimeout time.Duration
	done       chan struct{}
}

func NewSubscriptionWorker(client MarketingClient, log *logger.Logger, metrics *observability.Metrics, queueSize int, jobTimeout time.Duration) *SubscriptionWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if jobTimeout <= 0 {
		jobTimeout = defaultJobTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SubscriptionWorker{
		client:     client,
		log:        log.With("component", "subscription_worker"),
		metrics:    metrics,
		jobs:       make(chan SubscriptionJob, queueSize),
		jobTimeout: jobTimeout,
		done:       make(chan struct{}),
	}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		w.log.Info("subscription worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.log.Info("subscription worker shutting down", "pending", len(w.jobs))
				return
			}
		}
	}()
}

// Done is closed once the worker loop has exited.
func (w *SubscriptionWorker) Done() <-chan struct{} {
	return w.done
}

// Dispatch implements services.SubscriptionDispatcher.
func (w *SubscriptionWorker) Dispatch(subscriber *domain.EmailSubscriber) {
	w.Enqueue(SubscriptionJob{Subscriber: *subscriber})
}

func (w *SubscriptionWorker) Enqueue(job SubscriptionJob) {
	select {
	case w.jobs <- job:
	default:
		w.log.Warn("subscription queue full, dropping sync", "email", job.Subscriber.Email)
		if w.metrics != nil {
			w.metrics.SubscriptionDropped.Inc()
		}
	}
}

func (w *SubscriptionWorker) processJob(ctx context.Context, job SubscriptionJob) {
	ctx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	sub := job.Subscriber
	if err := w.client.SyncSubscriber(ctx, &sub); err != nil {
		w.log.Error("marketing sync failed", "email", sub.Email, "error", err)
		w.observe(OutcomeFailed)
		return
	}

	w.log.Info("marketing sync complete", "email", sub.Email, "tags", sub.Tags())
	w.observe(OutcomeSynced)
}

func (w *SubscriptionWorker) observe(outcome string) {
	if w.metrics != nil {
		w.metrics.SubscriptionSyncs.WithLabelValues(outcome).Inc()
	}
}

// NoopMarketingClient is used when no marketing API key is configured.
type NoopMarketingClient struct {
	Log *logger.Logger
}

func (c NoopMarketingClient) SyncSubscriber(_ context.Context, subscriber *domain.EmailSubscriber) error {
	if c.Log != nil {
		c.Log.Debug("marketing sync disabled, skipping", "email", subscriber.Email)
	}
	return nil
}
