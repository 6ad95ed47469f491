// Package metrics records compile and serve metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics are
// only collected when `pagesmith serve --metrics` installs a
// PrometheusRecorder:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
