package google

// Scopes are the Google OAuth scopes the bot requests. Only calendar event
// access is needed; the bot never reads calendar metadata or other services.
var Scopes = []string{
	"https://www.googleapis.com/auth/calendar.events",
}
