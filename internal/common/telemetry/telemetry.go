// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"context"
	"expvar"
	"strings"
	"sync"
	"time"

	"github.com/nexaqa/testforge/internal/common"
)

type spanKey struct{}

type span struct {
	name  string
	start time.Time
}

var (
	initOnce sync.Once

	extractionTotal     *expvar.Map
	extractionLatencyMS *expvar.Map
	extractionFailures  *expvar.Int

	generationTotal     *expvar.Int
	generationScenarios *expvar.Int
	generationLatencyMS *expvar.Int
)

func ensureInit() {
	initOnce.Do(func() {
		extractionTotal = expvar.NewMap("testforge_extractions_total")
		extractionLatencyMS = expvar.NewMap("testforge_extraction_latency_ms")
		extractionFailures = expvar.NewInt("testforge_extraction_failures_total")

		generationTotal = expvar.NewInt("testforge_generations_total")
		generationScenarios = expvar.NewInt("testforge_generation_scenarios_total")
		generationLatencyMS = expvar.NewInt("testforge_generation_latency_ms")
	})
}

// StartSpan marks the start of a named operation and returns a finish
// function that logs the elapsed time with any extra attributes.
func StartSpan(ctx context.Context, name string) (context.Context, func(attrs ...interface{})) {
	ensureInit()
	sp := &span{name: name, start: time.Now()}
	ctx = context.WithValue(ctx, spanKey{}, sp)
	logger := common.Logger()
	logger.Debug("trace: start", "span", name)
	return ctx, func(attrs ...interface{}) {
		duration := time.Since(sp.start)
		logger.Debug("trace: end", append([]interface{}{"span", name, "dur", duration}, attrs...)...)
	}
}

// RecordExtraction counts one document extraction by source format.
func RecordExtraction(documentType string, duration time.Duration) {
	ensureInit()
	key := strings.TrimSpace(strings.ToLower(documentType))
	if key == "" {
		key = "unknown"
	}
	extractionTotal.Add(key, 1)
	if duration > 0 {
		extractionLatencyMS.Add(key, duration.Milliseconds())
	}
}

// RecordExtractionFailure counts a document that could not be processed.
func RecordExtractionFailure() {
	ensureInit()
	extractionFailures.Add(1)
}

// RecordGeneration counts one scenario-generation run and the scenarios it
// produced.
func RecordGeneration(scenarios int, duration time.Duration) {
	ensureInit()
	generationTotal.Add(1)
	if scenarios > 0 {
		generationScenarios.Add(int64(scenarios))
	}
	if duration > 0 {
		generationLatencyMS.Add(duration.Milliseconds())
	}
}

// SpanDuration reports the elapsed time of the span carried by ctx, or zero
// when no span is active.
func SpanDuration(ctx context.Context) time.Duration {
	sp, _ := ctx.Value(spanKey{}).(*span)
	if sp == nil {
		return 0
	}
	return time.Since(sp.start)
}
