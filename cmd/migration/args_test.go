package main

import "testing"

func TestParseSteps(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "", want: 1},
		{in: " 3 ", want: 3},
		{in: "0", wantErr: true},
		{in: "-2", wantErr: true},
		{in: "two", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseSteps(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseSteps(%q) err=%v wantErr=%t", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("parseSteps(%q)=%d want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("3"); err != nil || v != 3 {
		t.Fatalf("parseVersion(3)=%d, %v", v, err)
	}
	if _, err := parseVersion(""); err == nil {
		t.Fatalf("expected error for missing version")
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if v, err := parseTarget("2"); err != nil || v != 2 {
		t.Fatalf("parseTarget(2)=%d, %v", v, err)
	}
	if _, err := parseTarget("x"); err == nil {
		t.Fatalf("expected error for invalid target")
	}
}
