package observer

import "github.com/tailored-agentic-units/observers/observability"

// Registry event types.
const (
	EventAdd     observability.EventType = "observer.add"
	EventRemove  observability.EventType = "observer.remove"
	EventReject  observability.EventType = "observer.reject"
	EventRebuild observability.EventType = "observer.rebuild"
	EventClone   observability.EventType = "observer.clone"
	EventPrune   observability.EventType = "observer.prune"

	EventNotifyStart    observability.EventType = "observer.notify.start"
	EventNotifyComplete observability.EventType = "observer.notify.complete"
	EventNotifyError    observability.EventType = "observer.notify.error"
)

const eventSource = "observer.Registry"
