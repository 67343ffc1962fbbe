//go:build !actiondebug

package actprob

import "testing"

func TestCheckedClamps(t *testing.T) {
	if got := Checked(Prob{Min: 10, Max: 220}); got != (Prob{10, 200}) {
		t.Errorf("Checked = %v", got)
	}
	if got := Checked(Prob{Min: 230, Max: 240}); got != Certain() {
		t.Errorf("Checked = %v", got)
	}
	if got := Checked(NotImplemented()); !got.IsNotImplemented() {
		t.Errorf("signals pass through, got %v", got)
	}
}

func TestComputedSaturates(t *testing.T) {
	tests := []struct {
		chance int
		want   Prob
	}{
		{150, Exact(150)},
		{-4, Impossible()},
		{600, Certain()},
	}
	for _, tt := range tests {
		if got := Computed(tt.chance); got != tt.want {
			t.Errorf("Computed(%d) = %v, want %v", tt.chance, got, tt.want)
		}
	}
}
