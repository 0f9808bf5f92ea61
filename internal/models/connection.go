package models

// ConnectionStatus is the lifecycle state of a connection. PENDING
// transitions to ACCEPTED or REJECTED exactly once; both are terminal.
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "PENDING"
	ConnectionAccepted ConnectionStatus = "ACCEPTED"
	ConnectionRejected ConnectionStatus = "REJECTED"
)

// Connection is a relationship request between two businesses. Requester
// and Recipient are populated when the backend expands them.
type Connection struct {
	ID          string           `json:"id"`
	Status      ConnectionStatus `json:"status"`
	RequesterID string           `json:"requesterId"`
	RecipientID string           `json:"recipientId"`
	Message     string           `json:"message"`
	Requester   *Business        `json:"requester,omitempty"`
	Recipient   *Business        `json:"recipient,omitempty"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
}
