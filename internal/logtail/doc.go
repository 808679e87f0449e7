// Package logtail reads the end of the sync log and renders zap's JSON
// entries as one-line text for the terminal.
//
// # Reading Log Files
//
// Read streams the file through a fixed-size tail that overwrites its oldest
// slot once full, so memory stays bounded by maxLines however large the log
// grows. Blank lines never count toward the limit.
//
// A non-positive maxLines returns the whole file. A missing file is not an
// error; the log simply hasn't been written yet.
//
// # Formatting
//
// FormatLine turns
//
//	{"level":"warn","ts":"2026-10-15T21:01:06.000Z","logger":"syncer","msg":"settings save failed","error":"503"}
//
// into
//
//	21:01:06 WARN  [syncer] settings save failed error=503
//
// Extra fields are appended in key order. Anything that isn't a JSON object
// passes through untouched.
package logtail
