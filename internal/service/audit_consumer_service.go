// FILE: internal/service/audit_consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"news-rating-be/internal/dto"
	"news-rating-be/internal/entity"
	"news-rating-be/internal/metrics"
	"news-rating-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAuditConsumerService interface {
	Consume(ctx context.Context) error
}

type auditConsumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	appender    RowAppender
	timeout     time.Duration
	sysLogger   logger.ILogger
	auditLogger logger.ILogger
}

func NewAuditConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	appender RowAppender,
	timeout time.Duration,
	sysLogger logger.ILogger,
	auditLogger logger.ILogger,
) IAuditConsumerService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &auditConsumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		appender:    appender,
		timeout:     timeout,
		sysLogger:   sysLogger,
		auditLogger: auditLogger,
	}
}

func (cs *auditConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: a failed append is logged and dropped so that
// auditing never holds up logins.
func (cs *auditConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.LoginRecordedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.sysLogger.Error("AUDIT", "Failed to unmarshal login event", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		return
	}

	row := entity.LoginAuditRow{Username: payload.Username, Timestamp: payload.Timestamp}

	// Local trail first, so the login is on record even if the sheet is down
	cs.auditLogger.Info("AUDIT", "Login recorded", map[string]interface{}{
		"username":  row.Username,
		"timestamp": row.Timestamp,
	})

	appendCtx, cancel := context.WithTimeout(ctx, cs.timeout)
	defer cancel()

	if err := cs.appender.AppendRow(appendCtx, row.Values()); err != nil {
		metrics.AuditAppends.WithLabelValues("failed").Inc()
		cs.sysLogger.Warn("AUDIT", "Failed to append login audit row", map[string]interface{}{
			"error":    err.Error(),
			"username": row.Username,
		})
		return
	}

	metrics.AuditAppends.WithLabelValues("ok").Inc()
	cs.sysLogger.Debug("AUDIT", "Login audit row appended", map[string]interface{}{
		"username": row.Username,
	})
}
