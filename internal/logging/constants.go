package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldExtractor  = "extractor"
	FieldOrigin     = "origin"
	FieldSpecFile   = "spec_file"
	FieldPluginDir  = "plugin_dir"
	FieldTable      = "table_index"
	FieldRow        = "row_index"
	FieldReason     = "reason"
	FieldCount      = "count"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldWorkers    = "workers"
)
