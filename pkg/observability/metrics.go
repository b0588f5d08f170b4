package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for text analysis. Each instance
// owns its registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	TextsAnalyzed    *prometheus.CounterVec
	SpellingErrors   prometheus.Histogram
	Connectors       *prometheus.CounterVec
	VocabularyUsed   prometheus.Counter
	AnalysisDuration prometheus.Histogram
	DictionaryLoad   prometheus.Histogram
	StoreOperations  *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors under namespace
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		TextsAnalyzed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "texts_analyzed_total",
				Help:      "Total number of analysed texts",
			},
			[]string{"status"},
		),
		SpellingErrors: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "spelling_errors",
				Help:      "Spelling errors found per text",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
			},
		),
		Connectors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "connectors_total",
				Help:      "Connectors counted across all texts",
			},
			[]string{"kind"},
		),
		VocabularyUsed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "vocabulary_words_used_total",
				Help:      "Personal vocabulary occurrences across all texts",
			},
		),
		AnalysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Time spent analysing one text",
				Buckets:   prometheus.DefBuckets,
			},
		),
		DictionaryLoad: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dictionary_load_seconds",
				Help:      "Time spent loading the spelling dictionary",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),
		StoreOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Repository operations by store, operation and status",
			},
			[]string{"store", "operation", "status"},
		),
	}

	registry.MustRegister(
		m.TextsAnalyzed,
		m.SpellingErrors,
		m.Connectors,
		m.VocabularyUsed,
		m.AnalysisDuration,
		m.DictionaryLoad,
		m.StoreOperations,
	)
	return m
}

// Registry returns the registry the collectors are registered with
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAnalysis records the outcome of one analysis
func (m *Metrics) RecordAnalysis(spellingErrors, basic, advanced, vocabularyUsed int, duration time.Duration) {
	m.TextsAnalyzed.WithLabelValues("success").Inc()
	m.SpellingErrors.Observe(float64(spellingErrors))
	m.Connectors.WithLabelValues("basic").Add(float64(basic))
	m.Connectors.WithLabelValues("advanced").Add(float64(advanced))
	m.VocabularyUsed.Add(float64(vocabularyUsed))
	m.AnalysisDuration.Observe(duration.Seconds())
}

// RecordAnalysisFailure counts an analysis that did not complete
func (m *Metrics) RecordAnalysisFailure() {
	m.TextsAnalyzed.WithLabelValues("error").Inc()
}

// RecordDictionaryLoad records how long the dictionary took to load
func (m *Metrics) RecordDictionaryLoad(duration time.Duration) {
	m.DictionaryLoad.Observe(duration.Seconds())
}

// RecordStoreOperation counts a repository call
func (m *Metrics) RecordStoreOperation(store, operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.StoreOperations.WithLabelValues(store, operation, status).Inc()
}
