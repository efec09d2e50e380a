// Package metrics records assembler timings and outcomes.
//
// Components take a Recorder and default to NoopRecorder, so collection is
// opt-in and callers never nil-check. PrometheusRecorder backs the Recorder
// with a registry that can be scraped over HTTP while watching or written to
// a node-exporter textfile after a one-shot build.
package metrics
