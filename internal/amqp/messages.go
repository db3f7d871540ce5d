package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"actlog/internal/core"
)

// RecordMirrorMessage carries a single appended activity record to the
// mirror worker. The worker appends it as a row to the configured sheet.
type RecordMirrorMessage struct {
	ID        string    `json:"id"`
	Ref       string    `json:"ref"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	Hours     float64   `json:"hours"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordMirrorMessage creates a mirror message for an appended record.
func NewRecordMirrorMessage(ref string, record core.Record) *RecordMirrorMessage {
	return &RecordMirrorMessage{
		ID:        uuid.NewString(),
		Ref:       ref,
		Date:      record.Date.String(),
		Category:  record.Category,
		Hours:     record.Hours,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordMirrorMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordMirrorMessageFromJSON creates a message from JSON bytes
func RecordMirrorMessageFromJSON(data []byte) (*RecordMirrorMessage, error) {
	var msg RecordMirrorMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
