// Package metrics counts alarm activity in a Prometheus registry.
//
// The registry is exported for scraping or written in the node_exporter
// textfile format on shutdown.
package metrics
