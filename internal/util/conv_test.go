package util

import "testing"

func TestMustParseUint(t *testing.T) {
	tests := []struct {
		in   string
		want uint
	}{
		{"42", 42},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"-1", 0},
	}
	for _, tt := range tests {
		if got := MustParseUint(tt.in); got != tt.want {
			t.Errorf("MustParseUint(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseUintParam(t *testing.T) {
	tests := []struct {
		in     string
		want   uint
		wantOk bool
	}{
		{"42", 42, true},
		{"1", 1, true},
		{"0", 0, false}, // 主键从 1 开始，0 视为非法
		{"", 0, false},
		{"abc", 0, false},
		{"-1", 0, false},
		{"1.5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseUintParam(tt.in)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("ParseUintParam(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOk)
		}
	}
}
