package admin

// HTTP
const (
	QueryParamUserID = "user_id"
	HeaderUserID     = "X-User-ID"
)

// Log messages
const (
	LogMsgLockdownEnabled      = "Lockdown enabled"
	LogMsgLockdownDisabled     = "Lockdown disabled"
	LogMsgLockdownRejected     = "Request rejected during lockdown"
	LogMsgWhitelistPassthrough = "Whitelisted user bypassed lockdown"
)
