// Package timezone pins the application to a single IANA timezone so that
// billing months, due dates, and meter reading timestamps are interpreted
// consistently regardless of where the process runs.
//
// The location comes from the APP_TIMEZONE environment variable (an IANA
// name such as "Asia/Jakarta" or "UTC") and is loaded when the package is
// imported. Callers use timezone.Now for the current time, ToAppTime to
// normalize an arbitrary time, and Format/Parse for layout conversions in
// the configured location.
package timezone
