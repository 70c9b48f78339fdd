// Package connectors builds page sources for scans.
//
// Each sub-package implements driven.PageSource for one kind of input:
// spider (crawl API), file (NDJSON files and stdin), sqs (queue) and
// archive (replay of a saved scan). Factory picks one per ScanRequest.
package connectors
