package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Business context (user_id, workspace_id, etc.) set once near the
// top of a request or worker loop shows up on every log line below it.
type LogFields struct {
	UserID      *int64  // authenticated user
	WorkspaceID *int64  // workspace being operated on
	ProjectID   *int64  // project being operated on
	TaskID      *int64  // task being operated on
	MessageID   *string // redis stream message ID (worker)
	Component   string  // component name, e.g. "tasklane.queue.consumer"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking
// precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.WorkspaceID != nil {
		result.WorkspaceID = next.WorkspaceID
	}
	if next.ProjectID != nil {
		result.ProjectID = next.ProjectID
	}
	if next.TaskID != nil {
		result.TaskID = next.TaskID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}
