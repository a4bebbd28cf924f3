package cli

import "testing"

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		format string
		single bool
		want   string
	}{
		{"bare base", "board", "svg", true, "board.svg"},
		{"matching extension", "out/board.svg", "svg", true, "out/board.svg"},
		{"matching extension, case", "board.SVG", "svg", true, "board.SVG"},
		{"other known extension", "board.svg", "png", true, "board.png"},
		{"multiple formats", "board.svg", "svg", false, "board.svg"},
		{"multiple formats, strip", "board.json", "dot", false, "board.dot"},
		{"unknown extension kept", "team.v2", "json", true, "team.v2.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.base, tt.format, tt.single); got != tt.want {
				t.Errorf("outputPath(%q, %q, %v) = %q, want %q", tt.base, tt.format, tt.single, got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats("", "svg"); len(got) != 1 || got[0] != "svg" {
		t.Errorf("default = %v", got)
	}
	if got := parseFormats("json,dot", "svg"); len(got) != 2 || got[1] != "dot" {
		t.Errorf("list = %v", got)
	}
}
