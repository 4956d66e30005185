package utils

import (
	"time"

	"listings-backend/config"
)

// DateLocation is the timezone all user-facing timestamps are rendered in.
var DateLocation = time.Local

// InitializeDateLocation loads the configured timezone, defaulting to the
// brokerage's local zone.
func InitializeDateLocation() {
	name := config.GetEnvOrDefault("APP_TIMEZONE", "America/Chicago")
	loc, err := time.LoadLocation(name)
	if err != nil {
		config.Logger.Warn("Invalid APP_TIMEZONE, using system local time")
		return
	}
	DateLocation = loc
}

// Today returns the current time in the app's timezone.
func Today() time.Time {
	return time.Now().In(DateLocation)
}
