package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/internal/domain/infringement"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/pkg/errors"
	"github.com/turtacn/InfringeScope/pkg/types/common"
)

const (
	// TopicAnalysisCompleted carries one event per stored analysis.
	TopicAnalysisCompleted = "infringement.analysis.completed"

	EventTypeAnalysisCompleted = "infringement.analysis.completed"

	// SourceService is stamped on every envelope.
	SourceService = "infringescope"

	SchemaVersion = "v1"
)

// EventEnvelope wraps every published payload.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// AnalysisCompletedPayload summarises a stored analysis.  Product details
// are omitted; consumers fetch them by AnalysisID.
type AnalysisCompletedPayload struct {
	AnalysisID            string    `json:"analysis_id"`
	PatentID              string    `json:"patent_id"`
	CompanyName           string    `json:"company_name"`
	AnalysisDate          time.Time `json:"analysis_date"`
	ProductCount          int       `json:"product_count"`
	OverallRiskAssessment string    `json:"overall_risk_assessment"`
	Degraded              bool      `json:"degraded"`
}

// NewEventEnvelope marshals payload into a fresh envelope.
func NewEventEnvelope(eventType, source string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal payload")
	}
	return &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: SchemaVersion,
		Payload:       data,
	}, nil
}

// DecodePayload unmarshals the payload into target.  An empty payload is a
// no-op.
func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to unmarshal payload")
	}
	return nil
}

// ToMessage renders the envelope as a message keyed by key.
func (e *EventEnvelope) ToMessage(topic string, key []byte) (*common.ProducerMessage, error) {
	val, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal envelope")
	}
	return &common.ProducerMessage{
		Topic: topic,
		Key:   key,
		Value: val,
		Headers: map[string]string{
			"event_type":     e.EventType,
			"source_service": e.Source,
			"schema_version": e.SchemaVersion,
		},
		Timestamp: e.Timestamp,
	}, nil
}

// Publisher is the subset of Producer the event publisher needs.
type Publisher interface {
	Publish(ctx context.Context, msg *common.ProducerMessage) error
}

// AnalysisEventPublisher announces stored analyses on one topic.
type AnalysisEventPublisher struct {
	producer Publisher
	topic    string
	logger   logging.Logger
}

// NewAnalysisEventPublisher returns a publisher writing to topic, or to
// TopicAnalysisCompleted when topic is empty.
func NewAnalysisEventPublisher(producer Publisher, topic string, logger logging.Logger) *AnalysisEventPublisher {
	if topic == "" {
		topic = TopicAnalysisCompleted
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AnalysisEventPublisher{producer: producer, topic: topic, logger: logger}
}

// Topic is the destination topic.
func (p *AnalysisEventPublisher) Topic() string { return p.topic }

// AnalysisCompleted publishes a. The message key is the patent id so all
// events for one patent land on one partition.
func (p *AnalysisEventPublisher) AnalysisCompleted(ctx context.Context, a *infringement.Analysis) error {
	env, err := NewEventEnvelope(EventTypeAnalysisCompleted, SourceService, AnalysisCompletedPayload{
		AnalysisID:            a.ID.String(),
		PatentID:              a.PatentID,
		CompanyName:           a.CompanyName,
		AnalysisDate:          a.AnalysisDate,
		ProductCount:          len(a.TopInfringingProducts),
		OverallRiskAssessment: a.OverallRiskAssessment,
		Degraded:              a.IsDegraded(),
	})
	if err != nil {
		return err
	}
	msg, err := env.ToMessage(p.topic, []byte(a.PatentID))
	if err != nil {
		return err
	}
	if err := p.producer.Publish(ctx, msg); err != nil {
		return err
	}
	p.logger.Debug("Analysis event published",
		logging.String("analysis_id", a.ID.String()),
		logging.String("topic", p.topic))
	return nil
}

//Personal.AI order the ending
