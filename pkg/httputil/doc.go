// Package httputil fetches remote radar datasets.
//
// # Overview
//
// Datasets are often published as files on a web server or in a repository
// (a Zalando-style entries.json, a YAML file, a spreadsheet export). This
// package downloads them for the CLI:
//
//   - [Client]: GET with retries, a size limit and an on-disk cache
//   - [Cache]: file-based response cache with a time-to-live
//   - [Retry]: retry with exponential backoff for transient failures
//
// # Caching
//
// Responses are kept under ~/.cache/techradar/http by default. Fresh entries
// are served without a request. Expired entries that carry an ETag are
// revalidated with If-None-Match; a 304 response renews the entry.
//
//	cache, err := httputil.NewCache("", time.Hour)
//	if err != nil {
//	    return err
//	}
//	client := httputil.NewClient(cache)
//	data, err := client.Fetch(ctx, "https://example.com/radar.yaml")
//
// # Errors
//
// Failures carry codes from pkg/errors: a 404 is FILE_NOT_FOUND, network
// errors and 5xx responses that persist after retries are UNAVAILABLE.
package httputil
