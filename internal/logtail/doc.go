// Package logtail reads the tail of local log files.
//
// The upload form uses it to preview the file a user is about to send: Load
// stats the file and returns its last PreviewLines lines plus a human-readable
// size.
//
// # Ring Buffer
//
// Read scans the file once and keeps only the last maxLines lines in a
// circular buffer, so memory stays O(maxLines) regardless of file size.
// Lines come back in file order.
//
// Example usage:
//
//	p, err := logtail.Load("/var/log/app.log", logtail.PreviewLines)
//	if err != nil {
//		return err
//	}
//	fmt.Println(p.HumanSize(), len(p.Lines))
//
// # Error Handling
//
// Read returns nil, nil for non-existent files. Load treats a missing file
// or a directory as an error. Other I/O errors are returned wrapped.
package logtail
