package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "pagesmith"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	pages         prom.Gauge
	artifacts     *prom.CounterVec
	templateFetch *prom.HistogramVec
	httpRequests  *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual compile stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total compile duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Compile outcomes by final status",
		}, []string{"outcome"}),
		pages: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "pages",
			Help:      "Pages produced by the last successful compile",
		}),
		artifacts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_generated_total",
			Help:      "Site-wide artifacts generated by kind",
		}, []string{"kind"}),
		templateFetch: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "template_fetch_duration_seconds",
			Help:      "Duration of remote template repository fetches",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Development server responses by status code",
		}, []string{"code"}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.buildDuration, pr.buildOutcome,
		pr.pages, pr.artifacts, pr.templateFetch, pr.httpRequests)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetPages(n int) { p.pages.Set(float64(n)) }

func (p *PrometheusRecorder) IncArtifact(kind string) {
	p.artifacts.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) ObserveTemplateFetch(d time.Duration, success bool) {
	res := "failed"
	if success {
		res = "success"
	}
	p.templateFetch.WithLabelValues(res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncHTTPRequest(code int) {
	p.httpRequests.WithLabelValues(strconv.Itoa(code)).Inc()
}
