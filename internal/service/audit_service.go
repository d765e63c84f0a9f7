// FILE: internal/service/audit_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"news-rating-be/internal/entity"
	"news-rating-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

var ErrAuditDisabled = errors.New("login audit is disabled")

// RowAppender writes one row to the remote audit sheet.
type RowAppender interface {
	AppendRow(ctx context.Context, values []interface{}) error
}

// DisabledAppender stands in when no service-account credential is available.
type DisabledAppender struct {
	Reason string
}

func (d DisabledAppender) AppendRow(ctx context.Context, values []interface{}) error {
	if d.Reason == "" {
		return ErrAuditDisabled
	}
	return fmt.Errorf("%w: %s", ErrAuditDisabled, d.Reason)
}

type IAuditService interface {
	RecordLogin(ctx context.Context, username string) error
}

type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	location  *time.Location
	now       func() time.Time
}

func NewAuditService(pubSub *gochannel.GoChannel, topicName string, location *time.Location) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		location:  location,
		now:       time.Now,
	}
}

// RecordLogin stamps the login in the audit timezone and hands it to the
// consumer. It does not wait for the remote append.
func (s *auditService) RecordLogin(ctx context.Context, username string) error {
	now := s.now()
	row := entity.NewLoginAuditRow(username, now, s.location)
	evt := events.NewLoginRecorded(row.Username, row.Timestamp, now)

	payload, err := json.Marshal(evt.Payload())
	if err != nil {
		return fmt.Errorf("marshal %s: %w", evt.EventType(), err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", evt.EventType())

	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		return fmt.Errorf("publish %s: %w", evt.EventType(), err)
	}
	return nil
}
