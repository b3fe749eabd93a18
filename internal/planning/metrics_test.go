package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRate(t *testing.T) {
	assert.InDelta(t, 3.0, RunRate(90), 1e-9)
	assert.InDelta(t, 0.0, RunRate(0), 1e-9)
	assert.InDelta(t, 1.0/30.0, RunRate(1), 1e-9)
}

func TestStockCoverDays(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		rate  float64
		want  float64
	}{
		{name: "normal cover", stock: 10, rate: 3, want: 10.0 / 3.0},
		{name: "zero rate with stock yields sentinel", stock: 5, rate: 0, want: 999},
		{name: "zero rate without stock yields zero", stock: 0, rate: 0, want: 0},
		{name: "zero stock with sales", stock: 0, rate: 2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, StockCoverDays(tt.stock, tt.rate), 1e-9)
		})
	}
}

func TestRoundTo(t *testing.T) {
	assert.InDelta(t, 3.33, RoundTo(10.0/3.0, 2), 1e-9)
	assert.InDelta(t, 3.3, RoundTo(10.0/3.0, 1), 1e-9)
	// half rounds up, not to even
	assert.InDelta(t, 0.13, RoundTo(0.125, 2), 1e-9)
	assert.InDelta(t, 2.0, RoundTo(1.5, 0), 1e-9)
}
