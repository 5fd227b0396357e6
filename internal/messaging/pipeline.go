package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.uber.org/zap"
)

// Handler processes a single decoded event. Handlers are synchronous; a
// returned error triggers redelivery.
type Handler[T any] func(ctx context.Context, event *T) error

// Pipeline routes topics to typed handlers on a watermill router. Every
// handler runs behind panic recovery and a bounded retry, so one poisonous
// message cannot take the whole consumer down.
type Pipeline struct {
	router     *message.Router
	subscriber message.Subscriber
	logger     *zap.Logger
	handlers   int
	started    bool
	done       chan struct{}
}

// NewPipeline creates an empty pipeline reading from the subscriber.
func NewPipeline(subscriber message.Subscriber, logger *zap.Logger) (*Pipeline, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NopLogger{})
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          watermill.NopLogger{},
		}.Middleware,
	)

	return &Pipeline{
		router:     router,
		subscriber: subscriber,
		logger:     logger,
		done:       make(chan struct{}),
	}, nil
}

// AddHandler routes one topic to a typed handler. Payloads that do not decode
// are logged and dropped; redelivering them cannot succeed.
func AddHandler[T any](p *Pipeline, name, topic string, handler Handler[T]) {
	p.handlers++

	p.router.AddNoPublisherHandler(name, topic, p.subscriber, func(msg *message.Message) error {
		var event T
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			p.logger.Error("dropping malformed event",
				zap.String("topic", topic),
				zap.String("message_id", msg.UUID),
				zap.Error(err),
			)

			return nil
		}

		return handler(msg.Context(), &event)
	})
}

// Start runs the router and returns once it is ready to receive.
func (p *Pipeline) Start(ctx context.Context) error {
	p.started = true

	go func() {
		defer close(p.done)

		if err := p.router.Run(ctx); err != nil {
			p.logger.Error("event pipeline stopped", zap.Error(err))
		}
	}()

	select {
	case <-p.router.Running():
		p.logger.Info("event pipeline running", zap.Int("handlers", p.handlers))

		return nil
	case <-p.done:
		return errors.New("event pipeline did not start")
	}
}

// Shutdown closes the router, waits for in-flight handlers, and closes the
// subscriber. A no-op when the pipeline was never started.
func (p *Pipeline) Shutdown() error {
	if !p.started {
		return nil
	}

	err := p.router.Close()
	<-p.done

	if cerr := p.subscriber.Close(); err == nil {
		err = cerr
	}

	return err
}
