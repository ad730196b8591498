// Package calendar provides a thin client over the Google Calendar API
// (calendar/v3) scoped to what the bot needs: listing upcoming events on a
// single calendar and inserting timed or all-day events.
//
// Authentication goes through the OAuth token stored by internal/google. The
// service handle is created lazily so the bot can start polling before the
// consent flow has been completed.
package calendar
