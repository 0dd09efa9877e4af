package websocket

// Event types for WebSocket messages
const (
	// Transaction events
	EventTransactionCreated = "transaction:created"
	EventTransactionUpdated = "transaction:updated"
	EventTransactionDeleted = "transaction:deleted"

	// Entity events
	EventEntityCreated = "entity:created"
	EventEntityUpdated = "entity:updated"
	EventEntityDeleted = "entity:deleted"
)

// TransactionEvent notifies dashboard clients about a ledger change.
type TransactionEvent struct {
	TransactionID uint   `json:"transaction_id"`
	EntityID      uint   `json:"entity_id"`
	CustomID      string `json:"custom_id"`
	EntityName    string `json:"entity_name"`
	Currency      string `json:"currency"`
	Amount        string `json:"amount"`
	ConvertedMMK  string `json:"converted_mmk"`
	Action        string `json:"action"` // created, updated, deleted
}

// EntityEvent notifies clients about a registry change.
type EntityEvent struct {
	EntityID   uint   `json:"entity_id"`
	CustomID   string `json:"custom_id"`
	EntityName string `json:"entity_name"`
	Type       string `json:"type"`
	Action     string `json:"action"` // created, updated, deleted
}
