package metrics

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
)

// Service turns the collected metrics into a JSON friendly summary.
type Service struct {
	metrics *Metrics
}

// NewService creates a new metrics service.
func NewService(metrics *Metrics) *Service {
	return &Service{metrics: metrics}
}

// Metric represents a single metric data point.
type Metric struct {
	Type  string `json:"type"`
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// MetricsData holds the counters of the running process.
type MetricsData struct {
	Resolutions     []Metric `json:"resolutions"`
	CatalogRequests []Metric `json:"catalog_requests"`
	TotalResolved   int      `json:"total_resolved"`
	TotalRequests   int      `json:"total_requests"`
}

// GetAllMetrics gathers the resolution and catalog counters.
func (s *Service) GetAllMetrics() (*MetricsData, error) {
	families, err := s.metrics.Registry().Gather()
	if err != nil {
		slog.Warn("Failed to gather metrics", "error", err)
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	data := &MetricsData{Resolutions: []Metric{}, CatalogRequests: []Metric{}}
	for _, family := range families {
		switch family.GetName() {
		case namespace + "_resolutions_total":
			data.Resolutions = counters("resolution", family, "resolver", "operation", "outcome")
			for _, metric := range data.Resolutions {
				if strings.HasSuffix(metric.Key, "/found") {
					data.TotalResolved += metric.Value
				}
			}
		case namespace + "_catalog_requests_total":
			data.CatalogRequests = counters("catalog_request", family, "endpoint", "status")
			for _, metric := range data.CatalogRequests {
				data.TotalRequests += metric.Value
			}
		}
	}
	return data, nil
}

// counters flattens a counter family into metrics keyed by the given label values joined with "/".
func counters(metricType string, family *dto.MetricFamily, labels ...string) []Metric {
	result := make([]Metric, 0, len(family.GetMetric()))
	for _, m := range family.GetMetric() {
		values := map[string]string{}
		for _, pair := range m.GetLabel() {
			values[pair.GetName()] = pair.GetValue()
		}
		parts := make([]string, 0, len(labels))
		for _, label := range labels {
			parts = append(parts, values[label])
		}
		result = append(result, Metric{
			Type:  metricType,
			Key:   strings.Join(parts, "/"),
			Value: int(m.GetCounter().GetValue()),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}
