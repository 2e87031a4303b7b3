package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	tests := map[int]string{
		200: "2xx",
		204: "2xx",
		301: "3xx",
		404: "4xx",
		429: "4xx",
		500: "5xx",
		503: "5xx",
		99:  "unknown",
	}
	for code, want := range tests {
		assert.Equal(t, want, ClassifyStatus(code), "code %d", code)
	}
}

func TestRecordRequest(t *testing.T) {
	counter := httpRequestsTotal.WithLabelValues("GET", "/v1/reports/top-products", "2xx")
	before := testutil.ToFloat64(counter)

	RecordRequest("GET", "/v1/reports/top-products", 200, 15*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
