package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
)

const notifyTimeout = 10 * time.Second

// AwardNotifier receives committed awards.
type AwardNotifier interface {
	NotifyAward(ctx context.Context, event entities.AwardEvent) error
}

// Publisher fans committed awards out to notifiers in the background.
// Notifier failures are logged and never reach the award caller.
type Publisher struct {
	notifiers []AwardNotifier
	logger    *zap.Logger
	wg        sync.WaitGroup
}

func NewPublisher(logger *zap.Logger, notifiers ...AwardNotifier) *Publisher {
	return &Publisher{
		notifiers: notifiers,
		logger:    logger,
	}
}

// Register adds a notifier. It is not safe to call concurrently with PublishAward.
func (p *Publisher) Register(n AwardNotifier) {
	p.notifiers = append(p.notifiers, n)
}

// PublishAward returns immediately. Delivery outlives the request context
// but is bounded by notifyTimeout.
func (p *Publisher) PublishAward(ctx context.Context, event entities.AwardEvent) {
	if len(p.notifiers) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()

		for _, n := range p.notifiers {
			if err := n.NotifyAward(ctx, event); err != nil {
				p.logger.Warn("award notification failed",
					zap.Int64("user_id", event.UserID),
					zap.Error(err),
				)
			}
		}
	}()
}

// Wait blocks until all published awards have been delivered.
func (p *Publisher) Wait() {
	p.wg.Wait()
}
