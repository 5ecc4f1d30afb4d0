package services

import "context"

const (
	EventRequestCreated   = "deplacement.request_created"
	EventProposalCreated  = "deplacement.proposal_created"
	EventProposalAccepted = "deplacement.proposal_accepted"
	EventProposalRefused  = "deplacement.proposal_refused"
)

// Event - уведомление для конкретных пользователей.
type Event struct {
	Type       string      `json:"type"`
	Recipients []string    `json:"-"`
	Payload    interface{} `json:"payload"`
}

// EventPublisher доставляет события подключенным клиентам. Publish не блокирует.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) {}

// NoopPublisher используется, когда realtime-канал не подключен.
func NoopPublisher() EventPublisher { return noopPublisher{} }
