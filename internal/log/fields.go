package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"

	FieldEntryID    = "entry_id"
	FieldCategoryID = "category_id"
	FieldCategory   = "category"
	FieldBucketDate = "bucket_date"
	FieldBackend    = "backend"
)

// Components defines standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentSchedule = "schedule"
	ComponentBackend  = "backend"
	ComponentCLI      = "cli"
)

// Operations defines the operation-scoped tags mutations log under.
const (
	OpLoad           = "load"
	OpSave           = "save"
	OpDelete         = "delete"
	OpReschedule     = "reschedule"
	OpResync         = "resync"
	OpCreateCategory = "create_category"
	OpDeleteCategory = "delete_category"
	OpList           = "list"
	OpPublish        = "publish"
	OpStartup        = "startup"
	OpShutdown       = "shutdown"
)
