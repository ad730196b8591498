// Package timefmt converts between the bot's user-facing date/time notation
// (M/D/YYYY with a 12-hour clock) and the ISO-8601 timestamps the calendar
// API expects.
//
// The bot operates with a single fixed UTC offset supplied by configuration;
// there is no timezone-database lookup and no daylight-saving adjustment.
// Encoding resolves the 12-hour meridiem into a 24-hour TimeSpec before
// rendering, and display formatting converts stored timestamps back into the
// unpadded "M/D/YYYY h:mm am/pm" form users type.
package timefmt
