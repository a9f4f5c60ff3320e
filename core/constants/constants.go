package constants

import "time"

const (
	ContextTokenData = "token_data"
	ContextToken     = "token"

	DefaultRequestTimeout = 10 * time.Second

	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// Redis keys
const (
	RedisKeyTokenBlacklist = "auth:blacklist:"
	RedisKeyOAuthState     = "auth:oauth_state:"
	RedisKeyEventsByGroup  = "events:group:"

	OAuthStateTTL = 10 * time.Minute
)

// Queue task types
const (
	TaskGroupCreated   = "notification:group_created"
	TaskEventChanged   = "notification:event_changed"
	TaskCommentCreated = "notification:comment_created"

	QueueDefault = "default"

	NotificationChannel = "notifications"
)

// Date/time layouts used on the wire
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)
