package logging

// Standardized field names for structured logging. Using the same keys
// everywhere keeps the run log easy to filter when chasing a mismatch.
const (
	FieldFile       = "file_path"
	FieldDirectory  = "directory"
	FieldSection    = "section"
	FieldState      = "state"
	FieldCount      = "count"
	FieldAmount     = "amount"
	FieldPeriod     = "period"
	FieldOutputFile = "output_file"
	FieldSheet      = "sheet"
)
