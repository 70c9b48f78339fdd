// Package sqs implements a page source that long-polls an Amazon SQS queue.
//
// Each message body holds one or more NDJSON page records, as produced by a
// scraper fleet. Messages are deleted once their pages have been delivered.
package sqs
