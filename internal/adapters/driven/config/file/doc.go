// Package file provides the TOML file implementation of driven.ConfigStore.
//
// Settings live in ~/.stackprobe/config.toml as nested tables:
//
//	[crawl]
//	api_url = "https://api.spider.cloud"
//	limit = 50
//
// and are addressed by flattened keys such as "crawl.limit".
package file
