package defense

import (
	"reflect"
	"testing"
)

func TestAverageRank_Ascending(t *testing.T) {
	got := averageRank([]float64{30, 10, 20}, true)
	want := []float64{3, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("averageRank = %v, want %v", got, want)
	}
}

func TestAverageRank_TiesShareAverage(t *testing.T) {
	// Two values tied for ranks 1 and 2 both take 1.5.
	got := averageRank([]float64{10, 10, 20}, true)
	want := []float64{1.5, 1.5, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("averageRank = %v, want %v", got, want)
	}
}

func TestAverageRank_Descending(t *testing.T) {
	got := averageRank([]float64{10, 30, 20}, false)
	want := []float64{3, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("averageRank descending = %v, want %v", got, want)
	}
}

func TestDenseRank_TiesDoNotSkipRanks(t *testing.T) {
	// Tied values share a rank and the next distinct value gets rank+1.
	got := denseRank([]float64{1.0, 1.0, 2.0, 3.0})
	want := []float64{1, 1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("denseRank = %v, want %v", got, want)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		vs   []float64
		want float64
	}{
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"empty", nil, 0},
		{"full rank scale", rankScale(32), 16.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.vs); got != tt.want {
				t.Errorf("median(%v) = %v, want %v", tt.vs, got, tt.want)
			}
		})
	}
}

func rankScale(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}
