package observability

const (
	// StackName is the metric label identifying which stack (one per
	// config file) produced a sample.
	StackName = "stack_name"

	// DefaultStackName is used when no stack name is configured.
	DefaultStackName = "default"
)
