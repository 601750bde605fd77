// Package timezone keeps the application timezone (APP_TIMEZONE, IANA name,
// UTC when unset or unknown) and the helpers that read or render request
// timestamps in it.
//
// Timestamps sent without an offset, e.g. "2030-05-01T10:00:00", are taken
// as wall-clock time in the application timezone:
//
//	start, err := timezone.ParseTimestamp(req.StartTime)
//	res.StartTime = timezone.Format(booking.StartTime, constant.DateFormat)
package timezone
