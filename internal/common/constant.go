// Package common contains wire-level constants shared by the transport
// client, the session store and the test backend.
package common

// Header names understood by the Zatyshok backend.
const (
	AppTokenHeaderName      = "X-App-Token"
	AppVersionHeaderName    = "X-App-Version"
	AuthorizationHeaderName = "Authorization"
	ContentTypeHeaderName   = "Content-Type"
	RequestIDHeaderName     = "X-Request-ID"

	BearerPrefix    = "Bearer "
	MIMEApplication = "application/json"
)

// Backend resource paths.
const (
	PathRoot     = "/"
	PathCalendar = "/calendar"
	PathMoods    = "/moods"
	PathLogin    = "/login"
	PathRegister = "/register"
)

// Keys under which the host store keeps the session.
const (
	SessionTokenKey    = "user_token"
	SessionUsernameKey = "username"
)

// DayLayout is the canonical, locale-independent calendar day format.
const DayLayout = "2006-01-02"
