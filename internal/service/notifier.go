package service

// Notifier streams submission lifecycle events to back-office dashboards
// (implemented by the websocket hub; the interface avoids an import cycle)
type Notifier interface {
	Notify(event string, payload interface{})
}

// Submission lifecycle events
const (
	EventSubmissionReceived = "submission_received"
	EventDeliverySucceeded  = "delivery_succeeded"
	EventDeliveryFailed     = "delivery_failed"
)
