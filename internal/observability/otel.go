package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fairhire360/internal/config"
	"fairhire360/internal/types"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ObservabilityConfig holds configuration for observability
type ObservabilityConfig struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	ConsoleOutput  bool
	PrettyPrint    bool
	SampleRate     float64
	Prometheus     PrometheusConfig
}

// Metrics holds all custom metrics for the candidate pipeline
type Metrics struct {
	// Pipeline metrics
	PipelineDuration    metric.Float64Histogram
	PipelineErrorCount  metric.Int64Counter
	CandidatesProcessed metric.Int64Counter
	BiasFactorsDetected metric.Int64Counter
	ScoreAdjustment     metric.Int64Histogram

	// Business metrics
	ResumesParsed   metric.Int64Counter
	MatchesComputed metric.Int64Counter
	JDsCreated      metric.Int64Counter

	// Rate limiting metrics
	RateLimitHits metric.Int64Counter
}

// ObservabilityManager manages OpenTelemetry setup
type ObservabilityManager struct {
	config           ObservabilityConfig
	fullConfig       *config.Config // Store full config for access to nested settings
	tracerProvider   *trace.TracerProvider
	meterProvider    *sdkmetric.MeterProvider
	metrics          *Metrics
	shutdownFuncs    []func(context.Context) error
	prometheusServer *http.ServeMux
}

// NewObservabilityManager creates a new observability manager
func NewObservabilityManager(obsConfig ObservabilityConfig, fullConfig *config.Config) (*ObservabilityManager, error) {
	if !obsConfig.Enabled {
		return &ObservabilityManager{config: obsConfig, fullConfig: fullConfig}, nil
	}

	om := &ObservabilityManager{
		config:        obsConfig,
		fullConfig:    fullConfig,
		shutdownFuncs: make([]func(context.Context) error, 0),
	}

	if err := om.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := om.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return om, nil
}

// initTracing sets up OpenTelemetry tracing
func (om *ObservabilityManager) initTracing() error {
	var exporter trace.SpanExporter
	var err error

	if om.config.ConsoleOutput {
		// Console exporter for development
		opts := []stdouttrace.Option{}
		if om.config.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	} else if om.fullConfig != nil && om.fullConfig.Observability.OTLP.Enabled {
		// OTLP exporter for production
		exporter, err = om.createOTLPExporter()
	} else {
		// No-op exporter when no production exporter is configured
		exporter = &noOpSpanExporter{}
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := om.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(om.config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	om.tracerProvider = tp
	om.shutdownFuncs = append(om.shutdownFuncs, tp.Shutdown)

	return nil
}

// initMetrics sets up OpenTelemetry metrics
func (om *ObservabilityManager) initMetrics() error {
	readers, err := om.setupMetricReaders()
	if err != nil {
		return err
	}

	res, err := om.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	meterProviderOptions := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	for _, reader := range readers {
		meterProviderOptions = append(meterProviderOptions, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(meterProviderOptions...)

	otel.SetMeterProvider(mp)
	om.meterProvider = mp
	om.shutdownFuncs = append(om.shutdownFuncs, mp.Shutdown)

	// Initialize custom metrics
	return om.initCustomMetrics()
}

// setupMetricReaders sets up all metric readers based on configuration
func (om *ObservabilityManager) setupMetricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	// Console exporter for development
	if err := om.setupConsoleReader(&readers); err != nil {
		return nil, err
	}

	// OTLP exporter for production metrics
	if err := om.setupOTLPReader(&readers); err != nil {
		return nil, err
	}

	// Prometheus exporter
	if err := om.setupPrometheusReader(&readers); err != nil {
		return nil, err
	}

	// If no readers configured, use manual reader as fallback
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	return readers, nil
}

// setupConsoleReader sets up console metric reader if enabled
func (om *ObservabilityManager) setupConsoleReader(readers *[]sdkmetric.Reader) error {
	if !om.config.ConsoleOutput {
		return nil
	}

	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create console metric exporter: %w", err)
	}

	interval := om.getMetricsCollectionInterval()
	*readers = append(*readers, sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)))
	return nil
}

// setupOTLPReader sets up OTLP metric reader if enabled
func (om *ObservabilityManager) setupOTLPReader(readers *[]sdkmetric.Reader) error {
	if om.fullConfig == nil || !om.fullConfig.Observability.OTLP.Enabled {
		return nil
	}

	otlpReader, err := om.createOTLPMetricsReader()
	if err != nil {
		return fmt.Errorf("failed to create OTLP metrics reader: %w", err)
	}
	if otlpReader != nil {
		*readers = append(*readers, otlpReader)
	}
	return nil
}

// setupPrometheusReader sets up Prometheus metric reader if enabled
func (om *ObservabilityManager) setupPrometheusReader(readers *[]sdkmetric.Reader) error {
	if !om.config.Prometheus.Enabled {
		return nil
	}

	prometheusReader, prometheusMux, err := SetupPrometheusExporter(om.config.Prometheus)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	if prometheusReader != nil {
		*readers = append(*readers, prometheusReader)
		om.prometheusServer = prometheusMux

		// Start Prometheus server
		if err := StartPrometheusServer(prometheusMux, om.config.Prometheus.Port); err != nil {
			return fmt.Errorf("failed to start Prometheus server: %w", err)
		}
	}
	return nil
}

// createResource creates the OpenTelemetry resource
func (om *ObservabilityManager) createResource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(om.config.ServiceName),
			semconv.ServiceVersion(om.config.ServiceVersion),
			attribute.String("service.instance.id", om.getServiceInstanceID()),
		),
	)
}

// initCustomMetrics creates all custom metrics for the candidate pipeline
func (om *ObservabilityManager) initCustomMetrics() error {
	meter := om.meterProvider.Meter(om.config.ServiceName)
	om.metrics = &Metrics{}

	if err := om.createPipelineMetrics(meter); err != nil {
		return err
	}

	if err := om.createBusinessMetrics(meter); err != nil {
		return err
	}

	return om.createRateLimitMetrics(meter)
}

// createPipelineMetrics creates candidate pipeline metrics
func (om *ObservabilityManager) createPipelineMetrics(meter metric.Meter) error {
	var err error

	om.metrics.PipelineDuration, err = meter.Float64Histogram(
		"fairhire360_pipeline_duration_seconds",
		metric.WithDescription("Time spent in pipeline operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline duration metric: %w", err)
	}

	om.metrics.PipelineErrorCount, err = meter.Int64Counter(
		"fairhire360_pipeline_errors_total",
		metric.WithDescription("Total number of pipeline operation errors"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline error count metric: %w", err)
	}

	om.metrics.CandidatesProcessed, err = meter.Int64Counter(
		"fairhire360_candidates_processed_total",
		metric.WithDescription("Total number of candidates scored"),
	)
	if err != nil {
		return fmt.Errorf("failed to create candidates processed metric: %w", err)
	}

	om.metrics.BiasFactorsDetected, err = meter.Int64Counter(
		"fairhire360_bias_factors_detected_total",
		metric.WithDescription("Total number of bias factors detected, by type and severity"),
	)
	if err != nil {
		return fmt.Errorf("failed to create bias factors detected metric: %w", err)
	}

	om.metrics.ScoreAdjustment, err = meter.Int64Histogram(
		"fairhire360_score_adjustment_points",
		metric.WithDescription("Points restored per candidate by bias correction"),
	)
	if err != nil {
		return fmt.Errorf("failed to create score adjustment metric: %w", err)
	}

	return nil
}

// createBusinessMetrics creates business-related metrics
func (om *ObservabilityManager) createBusinessMetrics(meter metric.Meter) error {
	var err error

	om.metrics.ResumesParsed, err = meter.Int64Counter(
		"fairhire360_resumes_parsed_total",
		metric.WithDescription("Total number of resumes parsed"),
	)
	if err != nil {
		return fmt.Errorf("failed to create resumes parsed metric: %w", err)
	}

	om.metrics.MatchesComputed, err = meter.Int64Counter(
		"fairhire360_matches_computed_total",
		metric.WithDescription("Total number of resume-to-JD matches computed"),
	)
	if err != nil {
		return fmt.Errorf("failed to create matches computed metric: %w", err)
	}

	om.metrics.JDsCreated, err = meter.Int64Counter(
		"fairhire360_job_descriptions_created_total",
		metric.WithDescription("Total number of job descriptions created"),
	)
	if err != nil {
		return fmt.Errorf("failed to create job descriptions created metric: %w", err)
	}

	return nil
}

// createRateLimitMetrics creates rate limiting metrics
func (om *ObservabilityManager) createRateLimitMetrics(meter metric.Meter) error {
	var err error

	om.metrics.RateLimitHits, err = meter.Int64Counter(
		"fairhire360_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// GetMetrics returns the metrics instance
func (om *ObservabilityManager) GetMetrics() *Metrics {
	if om.metrics == nil {
		return &Metrics{} // Return empty metrics if not initialized
	}
	return om.metrics
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (om *ObservabilityManager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !om.config.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	return otelhttp.NewMiddleware(
		om.config.ServiceName,
		otelhttp.WithTracerProvider(om.tracerProvider),
		otelhttp.WithMeterProvider(om.meterProvider),
	)
}

// Tracer returns a tracer for the service
func (om *ObservabilityManager) Tracer(name string) oteltrace.Tracer {
	if !om.config.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown gracefully shuts down all observability components
func (om *ObservabilityManager) Shutdown(ctx context.Context) error {
	for _, shutdown := range om.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// TrackPipelineOperation instruments a pipeline operation with tracing and metrics
func (m *Metrics) TrackPipelineOperation(ctx context.Context, operation string, om *ObservabilityManager, fn func(context.Context) error) error {
	if m.PipelineDuration == nil {
		// Metrics not initialized, just run the function
		return fn(ctx)
	}

	tracer := otel.Tracer("fairhire360.pipeline")
	ctx, span := tracer.Start(ctx, "pipeline."+operation)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start).Seconds()

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}

	if om.pipelineMetricsEnabled() {
		if om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Pipeline.TrackDuration {
			m.PipelineDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		}
		if err != nil {
			m.PipelineErrorCount.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	}

	span.SetAttributes(attrs...)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("error", true))
	}

	return err
}

// RecordCandidateProcessed records metrics for a fully processed candidate
func (m *Metrics) RecordCandidateProcessed(ctx context.Context, c *types.Candidate, om *ObservabilityManager) {
	if !om.pipelineMetricsEnabled() {
		return
	}

	if m.CandidatesProcessed != nil {
		m.CandidatesProcessed.Add(ctx, 1, metric.WithAttributes(
			attribute.String("status", string(c.Status)),
			attribute.String("bias_level", string(c.BiasLevel)),
		))
	}

	if m.BiasFactorsDetected != nil && om.trackBiasFactors() {
		for _, f := range c.BiasFactors {
			m.BiasFactorsDetected.Add(ctx, 1, metric.WithAttributes(
				attribute.String("factor_type", string(f.Type)),
				attribute.String("severity", string(f.Severity)),
			))
		}
	}

	if m.ScoreAdjustment != nil && om.trackScoreDeltas() {
		m.ScoreAdjustment.Record(ctx, int64(c.AdjustedScore-c.OriginalScore))
	}
}

// RecordResumeParsed records a resume parse event
func (m *Metrics) RecordResumeParsed(ctx context.Context, success bool, confidence int) {
	if m.ResumesParsed == nil {
		return
	}
	m.ResumesParsed.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("success", success),
		attribute.Int("confidence", confidence),
	))
}

// RecordMatchComputed records a resume-to-JD match event
func (m *Metrics) RecordMatchComputed(ctx context.Context, score int) {
	if m.MatchesComputed == nil {
		return
	}
	m.MatchesComputed.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("overall_score", score),
	))
}

// RecordJDCreated records a job description creation event
func (m *Metrics) RecordJDCreated(ctx context.Context) {
	if m.JDsCreated != nil {
		m.JDsCreated.Add(ctx, 1)
	}
}

// RecordRateLimitHit records a rate limit hit
func (m *Metrics) RecordRateLimitHit(ctx context.Context, om *ObservabilityManager, attributes ...attribute.KeyValue) {
	// Rate limiting is an infrastructure metric
	if om != nil && om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.Infrastructure.TrackRateLimits {
		return
	}
	if m.RateLimitHits != nil {
		m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attributes...))
	}
}

func (om *ObservabilityManager) pipelineMetricsEnabled() bool {
	if om == nil || om.fullConfig == nil {
		return true
	}
	return om.fullConfig.Observability.CustomMetrics.Pipeline.Enabled
}

func (om *ObservabilityManager) trackBiasFactors() bool {
	if om == nil || om.fullConfig == nil {
		return true
	}
	return om.fullConfig.Observability.CustomMetrics.Pipeline.TrackBiasFactors
}

func (om *ObservabilityManager) trackScoreDeltas() bool {
	if om == nil || om.fullConfig == nil {
		return true
	}
	return om.fullConfig.Observability.CustomMetrics.Pipeline.TrackScoreDeltas
}

// No-op exporter for when console output is disabled
type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// createOTLPExporter creates an OTLP HTTP trace exporter
func (om *ObservabilityManager) createOTLPExporter() (trace.SpanExporter, error) {
	if om.fullConfig == nil {
		return nil, fmt.Errorf("config not available for OTLP configuration")
	}

	otlpConfig := om.fullConfig.Observability.OTLP

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(otlpConfig.Endpoint),
	}

	if otlpConfig.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	return exporter, nil
}

// createOTLPMetricsReader creates an OTLP HTTP metrics reader
func (om *ObservabilityManager) createOTLPMetricsReader() (sdkmetric.Reader, error) {
	if om.fullConfig == nil {
		return nil, fmt.Errorf("config not available for OTLP configuration")
	}

	otlpConfig := om.fullConfig.Observability.OTLP

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpointURL(otlpConfig.Endpoint),
	}

	if otlpConfig.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	interval := om.getMetricsCollectionInterval()
	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)), nil
}

// getServiceInstanceID returns the service instance ID from config or generates one
func (om *ObservabilityManager) getServiceInstanceID() string {
	if om.fullConfig != nil && om.fullConfig.Observability.ServiceInstance != "" {
		return om.fullConfig.Observability.ServiceInstance
	}
	// Fallback to default if config not available
	return "fairhire360-1"
}

// getMetricsCollectionInterval returns the configured metrics collection interval
func (om *ObservabilityManager) getMetricsCollectionInterval() time.Duration {
	if om.fullConfig != nil {
		return om.fullConfig.Observability.Metrics.CollectionInterval
	}
	// Fallback to default
	return 15 * time.Second
}
