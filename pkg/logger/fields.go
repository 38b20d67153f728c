package logger

// Field names shared by structured log calls.
const (
	FieldFile      = "file"
	FieldOutput    = "output"
	FieldReason    = "reason"
	FieldPhase     = "phase"
	FieldError     = "error"
	FieldRoot      = "root"
	FieldCount     = "count"
	FieldFamily    = "family"
	FieldModel     = "model"
	FieldDuration  = "duration_ms"
	FieldComponent = "component"
)
