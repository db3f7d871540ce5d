package log

// Standard field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldDuration  = "duration"
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldRemote    = "remote"

	FieldBackend   = "backend"
	FieldRecordRef = "record_ref"
	FieldDate      = "date"
	FieldCategory  = "category"
	FieldHours     = "hours"
	FieldWindow    = "window"
	FieldPositions = "positions"
	FieldRemoved   = "removed"
	FieldQueue     = "queue"
	FieldExchange  = "exchange"
	FieldAttempt   = "attempt"
)

// Component names used across the application
const (
	ComponentApp     = "actlog"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentStorage = "storage"
	ComponentService = "service"
	ComponentAMQP    = "amqp"
	ComponentSheets  = "sheets"
	ComponentWorker  = "worker"
)
