package constants

// User roles
const (
	RoleAdmin    = "ADMIN"
	RoleTeamLead = "TEAM_LEAD"
	RoleUser     = "USER"
)

// Task status
const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusInReview   = "IN_REVIEW"
	TaskStatusDone       = "DONE"
)

// Task priority
const (
	TaskPriorityLow      = "LOW"
	TaskPriorityMedium   = "MEDIUM"
	TaskPriorityHigh     = "HIGH"
	TaskPriorityCritical = "CRITICAL"
)

// Task history field names
const (
	FieldStatus         = "status"
	FieldPriority       = "priority"
	FieldAssignee       = "assignee"
	FieldEstimatedHours = "estimated_hours"
	FieldActualHours    = "actual_hours"
	FieldDueDate        = "due_date"
)

// ID prefixes
const (
	IDPrefixUser    = "user"
	IDPrefixTeam    = "team"
	IDPrefixTask    = "task"
	IDPrefixComment = "comment"
	IDPrefixHistory = "history"
)

// JWT token types
const (
	JWTTypeAccess  = "access"
	JWTTypeRefresh = "refresh"
)

// HTTP headers
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
)
