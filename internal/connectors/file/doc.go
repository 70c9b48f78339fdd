// Package file implements a page source that reads NDJSON pages from a file
// or standard input, optionally following the file as it grows.
package file
