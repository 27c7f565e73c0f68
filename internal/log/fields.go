package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldUploadID      = "upload_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldDurationHuman = "duration_human"
	FieldUserAgent     = "user_agent"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldDataset       = "dataset"
	FieldFileSize      = "file_size"
	FieldRows          = "rows"
	FieldDroppedRows   = "dropped_rows"
	FieldRole          = "role"
	FieldColumn        = "column"
	FieldView          = "view"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentDataset  = "dataset"
	ComponentInsights = "insights"
	ComponentRender   = "render"
	ComponentTemplate = "template"
	ComponentSecurity = "security"
)

// Operations defines standard operation names
const (
	OpUpload    = "upload"
	OpParse     = "parse"
	OpResolve   = "resolve"
	OpAggregate = "aggregate"
	OpRender    = "render"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
