package consumer

import (
	"context"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the part of *kafkago.Reader the consumers use.
type Reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// errUndecodable marks a message that can never succeed; it is committed so
// the partition keeps moving.
var errUndecodable = errors.New("undecodable message")

type handleFunc func(ctx context.Context, msg kafkago.Message, log *zap.Logger) error

// run fetches until ctx is done. A failed message is left uncommitted so the
// group redelivers it after a rebalance or restart.
func run(ctx context.Context, reader Reader, name string, logger *zap.Logger, handle handleFunc) {
	log := logger.Named("kafka.consumer." + name)
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if err := handle(ctx, msg, log); err != nil {
			if !errors.Is(err, errUndecodable) {
				log.Error("handle message failed",
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
				continue
			}
			log.Error("dropping message", zap.Int64("offset", msg.Offset), zap.Error(err))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
		}
	}
}
