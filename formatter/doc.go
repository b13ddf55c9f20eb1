// Package formatter defines how a log Record is rendered into the bounded
// EntryBuf of a single log call.
//
// Three formats are built in. GoogleFormatter produces glog-style headers
// ("I0308 213124.255 4242 app/store] message"), SystemdFormatter swaps the
// level letter and timestamp for a syslog priority prefix understood by
// journald ("<5>4242 app/store] message"), and TextFormatter produces
// "timestamp [LEVEL] target: message" with optional ANSI colors.
//
// Formatters never allocate per call on the common path: headers are
// assembled in small stack arrays with append-style functions
// (time.AppendFormat, strconv.AppendInt) and then copied into the EntryBuf.
// They append unconditionally and return the EntryBuf's sticky truncation
// error at the end, so an oversized message still yields a complete header
// followed by as much of the message as fits.
package formatter
