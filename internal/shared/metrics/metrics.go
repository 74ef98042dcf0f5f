package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	resumeSavedTotal   atomic.Uint64
	resumeFailedTotal  atomic.Uint64
	suggestionTotal    atomic.Uint64
	suggestionFailed   atomic.Uint64
	suggestionFallback atomic.Uint64
	suggestionSkipped  atomic.Uint64

	suggestionDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncResumeSaved counts a stored resume.
func IncResumeSaved() {
	resumeSavedTotal.Add(1)
}

// IncResumeFailed counts a rejected or failed resume insert.
func IncResumeFailed() {
	resumeFailedTotal.Add(1)
}

// IncSuggestion counts a suggestion answered with upstream text.
func IncSuggestion() {
	suggestionTotal.Add(1)
}

// IncSuggestionFailed counts a suggestion call that errored.
func IncSuggestionFailed() {
	suggestionFailed.Add(1)
}

// IncSuggestionFallback counts an upstream reply with no usable content.
func IncSuggestionFallback() {
	suggestionFallback.Add(1)
}

// IncSuggestionSkipped counts requests answered with the "not configured" placeholder.
func IncSuggestionSkipped() {
	suggestionSkipped.Add(1)
}

// ObserveSuggestionDurationMs records an upstream call duration in milliseconds.
func ObserveSuggestionDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	suggestionDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_saved_total", "Resumes stored", resumeSavedTotal.Load())
	writeCounter(&buf, "resume_failed_total", "Resume saves that failed", resumeFailedTotal.Load())
	writeCounter(&buf, "suggestion_total", "Suggestions returned from the AI service", suggestionTotal.Load())
	writeCounter(&buf, "suggestion_failed_total", "Suggestion calls that failed", suggestionFailed.Load())
	writeCounter(&buf, "suggestion_fallback_total", "Suggestion replies without usable content", suggestionFallback.Load())
	writeCounter(&buf, "suggestion_skipped_total", "Suggestions skipped because no AI key is set", suggestionSkipped.Load())
	writeHistogram(&buf, "suggestion_duration_ms", "AI service call duration in milliseconds", suggestionDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	// Observe already counts a value in every bucket whose bound it fits under.
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
