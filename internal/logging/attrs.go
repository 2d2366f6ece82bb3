package logging

// Attribute keys shared by pipeline log lines.
const (
	FieldStage    = "stage"
	FieldCategory = "category"
	FieldPeriod   = "period"
	FieldRunID    = "run_id"
)
