// Package event publishes entity change events to the configured broker.
// Publishing is best-effort: a failed publish is logged and counted, it
// never fails the originating write.
package event

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/pkg/messaging"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

type Service struct {
	broker  messaging.Broker
	metrics *metrics.Metrics
}

func NewService(broker messaging.Broker, m *metrics.Metrics) *Service {
	if broker == nil {
		broker = messaging.NewNoopBroker()
	}
	return &Service{broker: broker, metrics: m}
}

func (s *Service) Emit(ctx context.Context, eventType, entityType, entityID string, payload interface{}) {
	evt := messaging.Event{
		Type:       eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    payload,
	}

	if err := s.broker.Publish(ctx, messaging.Channel, evt); err != nil {
		if s.metrics != nil {
			s.metrics.EventsFailed.Inc()
		}
		log.Warn().
			Err(err).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Str("event_type", eventType).
			Msg("failed to publish entity event")
		return
	}

	if s.metrics != nil {
		s.metrics.EventsPublished.Inc()
	}
}

// TransitionApplied records a successful status transition.
func (s *Service) TransitionApplied(entityType, from, to string) {
	if s.metrics != nil {
		s.metrics.StatusTransitions.WithLabelValues(entityType, from, to).Inc()
	}
}

// TransitionRejected records a rejected status transition.
func (s *Service) TransitionRejected(entityType string) {
	if s.metrics != nil {
		s.metrics.TransitionsRejected.WithLabelValues(entityType).Inc()
	}
}
