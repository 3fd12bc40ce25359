package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Appointment notification events
const (
	EventAppointmentCreated       = "appointment.created"
	EventAppointmentStatusChanged = "appointment.status_changed"
	EventAppointmentUpdated       = "appointment.updated"
	EventAppointmentDeleted       = "appointment.deleted"
)

// Notification is published to subscribers with its recipients spelled out;
// consumers never derive the audience themselves.
type Notification struct {
	Event         string      `json:"event"`
	AppointmentID uuid.UUID   `json:"appointment_id"`
	RecipientIDs  []uuid.UUID `json:"recipient_ids"`
	Status        string      `json:"status,omitempty"`
	Message       string      `json:"message,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

type Notifier interface {
	Publish(ctx context.Context, n Notification) error
}

type NotificationService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	channel     string
}

func NewNotificationService(redisClient *redis.Client, log *logrus.Logger, channel string) *NotificationService {
	return &NotificationService{
		redisClient: redisClient,
		log:         log,
		channel:     channel,
	}
}

func (s *NotificationService) Publish(ctx context.Context, n Notification) error {
	if n.OccurredAt.IsZero() {
		n.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := s.redisClient.Publish(ctx, s.channel, payload).Err(); err != nil {
		s.log.Warnf("Failed to publish %s for appointment %s: %+v", n.Event, n.AppointmentID, err)
		return fmt.Errorf("publish %s: %w", n.Event, err)
	}

	s.log.Debugf("Published %s for appointment %s to %d recipients", n.Event, n.AppointmentID, len(n.RecipientIDs))
	return nil
}
