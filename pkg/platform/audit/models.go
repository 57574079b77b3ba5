package audit

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	id "govinda/pkg/domain"
)

// EventCategory classifies change events by their retention needs.
type EventCategory string

const (
	// CategoryCompliance covers changes to insured-person master data. These
	// must never be lost and are written fail-closed inside the business transaction.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers housekeeping changes that downstream systems
	// may consume but regulators do not ask for.
	CategoryOperations EventCategory = "operations"
)

// AggregateType names the kind of entity an event belongs to. It becomes the
// Kafka record key prefix so all events of one aggregate land on one partition.
type AggregateType string

const (
	AggregatePerson    AggregateType = "person"
	AggregateHousehold AggregateType = "household"
)

type AuditEvent string

const (
	// Person events
	EventPersonCreated        AuditEvent = "person_created"
	EventPersonUpdated        AuditEvent = "person_updated"
	EventPersonNameChanged    AuditEvent = "person_name_changed"
	EventMaritalStatusChanged AuditEvent = "marital_status_changed"
	EventAddressAdded         AuditEvent = "address_added"
	EventAddressClosed        AuditEvent = "address_closed"

	// Household events
	EventHouseholdCreated       AuditEvent = "household_created"
	EventHouseholdRenamed       AuditEvent = "household_renamed"
	EventHouseholdMemberAdded   AuditEvent = "household_member_added"
	EventHouseholdMemberRemoved AuditEvent = "household_member_removed"
	EventHouseholdDeleted       AuditEvent = "household_deleted"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventPersonCreated:          CategoryCompliance,
	EventPersonNameChanged:      CategoryCompliance,
	EventMaritalStatusChanged:   CategoryCompliance,
	EventAddressAdded:           CategoryCompliance,
	EventAddressClosed:          CategoryCompliance,
	EventHouseholdMemberAdded:   CategoryCompliance,
	EventHouseholdMemberRemoved: CategoryCompliance,

	EventPersonUpdated:    CategoryOperations,
	EventHouseholdCreated: CategoryOperations,
	EventHouseholdRenamed: CategoryOperations,
	EventHouseholdDeleted: CategoryOperations,
}

// Category returns the EventCategory for this event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is a master-data change emitted by a service inside its transaction.
// It carries identifiers only; consumers re-read the aggregate when they need state.
type Event struct {
	ID            string
	Category      EventCategory
	Timestamp     time.Time
	TenantID      id.TenantID
	ActorID       id.UserID
	AggregateType AggregateType
	AggregateID   string
	Action        string
	Version       int64
	Reason        string
	// EffectiveDate is set for historized mutations.
	EffectiveDate *time.Time
	// SubjectHash fingerprints the AHV number so consumers can correlate
	// records without receiving the identifier itself.
	SubjectHash string
	RequestID   string
}

// Store persists change events. The postgres implementation writes to the
// outbox table inside the caller's transaction.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Payload is the JSON document published to Kafka.
type Payload struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	Timestamp     string `json:"timestamp"`
	TenantID      string `json:"tenant_id"`
	ActorID       string `json:"actor_id,omitempty"`
	AggregateType string `json:"aggregate_type"`
	AggregateID   string `json:"aggregate_id"`
	Action        string `json:"action"`
	Version       int64  `json:"version"`
	Reason        string `json:"reason,omitempty"`
	EffectiveDate string `json:"effective_date,omitempty"`
	SubjectHash   string `json:"subject_hash,omitempty"`
	RequestID     string `json:"request_id,omitempty"`
}

// NewPayload builds the wire document for an event. The category is always
// derived from the action.
func NewPayload(eventID uuid.UUID, event Event) Payload {
	p := Payload{
		ID:            eventID.String(),
		Category:      string(AuditEvent(event.Action).Category()),
		Timestamp:     event.Timestamp.UTC().Format(time.RFC3339Nano),
		TenantID:      event.TenantID.String(),
		AggregateType: string(event.AggregateType),
		AggregateID:   event.AggregateID,
		Action:        event.Action,
		Version:       event.Version,
		Reason:        event.Reason,
		SubjectHash:   event.SubjectHash,
		RequestID:     event.RequestID,
	}
	if !event.ActorID.IsNil() {
		p.ActorID = event.ActorID.String()
	}
	if event.EffectiveDate != nil {
		p.EffectiveDate = event.EffectiveDate.Format("2006-01-02")
	}
	return p
}

// OutboxEntry is a stored, not yet published change event.
type OutboxEntry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// Key is the Kafka record key: events of one aggregate share a partition.
func (e OutboxEntry) Key() string {
	return e.AggregateType + ":" + e.AggregateID
}

// PublishFunc delivers a batch and returns the ids that were delivered.
// A partial batch is reported together with the error that stopped it.
type PublishFunc func(ctx context.Context, entries []OutboxEntry) ([]uuid.UUID, error)

// HashSubject returns a tenant-keyed BLAKE2b-256 fingerprint of value.
// The same AHV number hashes differently per tenant.
func HashSubject(tenantID id.TenantID, value string) string {
	if value == "" {
		return ""
	}
	h, err := blake2b.New256(tenantID[:])
	if err != nil {
		return ""
	}
	h.Write([]byte(value))
	return hex.EncodeToString(h.Sum(nil))
}
