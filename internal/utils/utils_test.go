package utils

import "testing"

func TestAverage(t *testing.T) {
	tests := []struct {
		in   []byte
		want byte
	}{
		{nil, 0},
		{[]byte{9}, 9},
		{[]byte{10, 20, 31}, 20},
		{[]byte{255, 255, 255}, 255},
	}
	for _, tt := range tests {
		if got := Average(tt.in...); got != tt.want {
			t.Errorf("Average(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestColoredBlock(t *testing.T) {
	got := ColoredBlock("  ", 1, 2, 3)
	want := "\033[48;2;1;2;3m  \033[0m"
	if got != want {
		t.Errorf("ColoredBlock = %q, want %q", got, want)
	}
}
