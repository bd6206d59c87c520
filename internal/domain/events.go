package domain

import "time"

// Event types
const (
	EventTypeTransactionCreated    = "transaction.created"
	EventTypeTransactionUpdated    = "transaction.updated"
	EventTypeTransactionDeleted    = "transaction.deleted"
	EventTypeSavingsAccountCreated = "savings_account.created"
	EventTypeSavingsAccountUpdated = "savings_account.updated"
	EventTypeSnapshotAppended      = "snapshot.appended"
)

// Aggregate types
const (
	AggregateTypeTransaction    = "transaction"
	AggregateTypeSavingsAccount = "savings_account"
)

// OutboxEvent represents a data-change event to be published.
// Subscribers use these to learn that a household's records changed and
// re-fetch the full lists; the events carry no incremental state.
type OutboxEvent struct {
	ID            string
	HouseholdID   string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransactionChangedEvent payload
type TransactionChangedEvent struct {
	TransactionID string `json:"transaction_id"`
	HouseholdID   string `json:"household_id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
}

// SavingsAccountChangedEvent payload
type SavingsAccountChangedEvent struct {
	AccountID   string `json:"account_id"`
	HouseholdID string `json:"household_id"`
	Name        string `json:"name"`
}

// SnapshotAppendedEvent payload
type SnapshotAppendedEvent struct {
	SnapshotID string `json:"snapshot_id"`
	AccountID  string `json:"account_id"`
	Capital    string `json:"capital"`
	Value      string `json:"value"`
}
