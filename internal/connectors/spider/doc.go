// Package spider implements a page source backed by the Spider crawl API.
//
// A crawl is a single POST to {api_url}/crawl. The response is streamed as
// newline-delimited JSON, one page per line, and framed as it arrives so
// detection starts before the crawl finishes.
package spider
