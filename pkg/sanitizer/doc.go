// Package sanitizer normalizes user-supplied text before it is stored or sent:
// email addresses, HTML bodies, previews, and file names.
package sanitizer
