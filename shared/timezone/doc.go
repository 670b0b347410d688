// Package timezone keeps every timestamp the service writes in one location.
//
// The location comes from APP_TIMEZONE (an IANA name such as "Africa/Nairobi")
// and is loaded when the package is imported. An unknown or empty name falls
// back to UTC.
//
//	now := timezone.Now()
//	arrival, err := timezone.ParseDate("2024-03-15")
package timezone
