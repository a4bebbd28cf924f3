package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lcerrors "github.com/matzehuels/layercanvas/pkg/errors"
)

func TestReadFragment(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		format         string
		wantNodes      int
		wantEdges      int
		wantContainers int
		wantCode       lcerrors.Code
	}{
		{
			name: "JSON",
			input: `{
				"nodes": [{"id": "A"}, {"id": "C", "width": 200, "label": "Check"}],
				"edges": [{"source": "A", "target": "C"}],
				"containers": [{"id": "success", "children": ["C"]}]
			}`,
			format:         FormatJSON,
			wantNodes:      2,
			wantEdges:      1,
			wantContainers: 1,
		},
		{
			name: "TOML",
			input: `
[[nodes]]
id = "A"

[[nodes]]
id = "B"
height = 60.0

[[edges]]
source = "A"
target = "B"

[[containers]]
id = "group"
children = ["B"]
`,
			format:         FormatTOML,
			wantNodes:      2,
			wantEdges:      1,
			wantContainers: 1,
		},
		{
			name:     "Invalid JSON",
			input:    `{invalid json}`,
			format:   FormatJSON,
			wantCode: lcerrors.ErrCodeInvalidFragment,
		},
		{
			name:     "Empty node ID",
			input:    `{"nodes": [{"id": ""}]}`,
			format:   FormatJSON,
			wantCode: lcerrors.ErrCodeInvalidFragment,
		},
		{
			name:     "Unsupported format",
			input:    `nodes: []`,
			format:   "yaml",
			wantCode: lcerrors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ReadFragment(strings.NewReader(tt.input), tt.format)

			if tt.wantCode != "" {
				if !lcerrors.Is(err, tt.wantCode) {
					t.Fatalf("ReadFragment() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFragment: %v", err)
			}

			if got := len(f.Nodes); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := len(f.Edges); got != tt.wantEdges {
				t.Errorf("edges = %d, want %d", got, tt.wantEdges)
			}
			if got := len(f.Containers); got != tt.wantContainers {
				t.Errorf("containers = %d, want %d", got, tt.wantContainers)
			}
		})
	}
}

func TestFragmentValidate(t *testing.T) {
	tests := []struct {
		name    string
		frag    Fragment
		wantErr bool
	}{
		{
			name: "valid",
			frag: Fragment{
				Nodes:      []FragmentNode{{ID: "A"}, {ID: "B"}},
				Edges:      []FragmentEdge{{Source: "A", Target: "missing"}},
				Containers: []FragmentContainer{{ID: "box", Children: []string{"B"}}},
			},
		},
		{
			name:    "duplicate node",
			frag:    Fragment{Nodes: []FragmentNode{{ID: "A"}, {ID: "A"}}},
			wantErr: true,
		},
		{
			name: "container shadows node",
			frag: Fragment{
				Nodes:      []FragmentNode{{ID: "A"}},
				Containers: []FragmentContainer{{ID: "A"}},
			},
			wantErr: true,
		},
		{
			name:    "negative size",
			frag:    Fragment{Nodes: []FragmentNode{{ID: "A", Width: -1}}},
			wantErr: true,
		},
		{
			name:    "empty edge endpoint",
			frag:    Fragment{Edges: []FragmentEdge{{Source: "A"}}},
			wantErr: true,
		},
		{
			name:    "empty child",
			frag:    Fragment{Containers: []FragmentContainer{{ID: "box", Children: []string{""}}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frag.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadFragmentFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fragment.toml")
	content := "[[nodes]]\nid = \"A\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := ReadFragmentFile(path)
	if err != nil {
		t.Fatalf("ReadFragmentFile: %v", err)
	}
	if len(f.Nodes) != 1 || f.Nodes[0].ID != "A" {
		t.Errorf("Nodes = %+v, want [A]", f.Nodes)
	}
}

func TestReadFragmentFileNotFound(t *testing.T) {
	if _, err := ReadFragmentFile("nonexistent.json"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestWriteFragmentTOML(t *testing.T) {
	f := Fragment{
		Nodes:      []FragmentNode{{ID: "A"}, {ID: "B", Width: 80}},
		Edges:      []FragmentEdge{{Source: "A", Target: "B"}},
		Containers: []FragmentContainer{{ID: "box", Children: []string{"B"}}},
	}

	var buf bytes.Buffer
	if err := WriteFragment(f, &buf, FormatTOML); err != nil {
		t.Fatalf("WriteFragment: %v", err)
	}

	got, err := ReadFragment(&buf, FormatTOML)
	if err != nil {
		t.Fatalf("ReadFragment: %v", err)
	}
	if len(got.Nodes) != 2 || got.Nodes[1].Width != 80 {
		t.Errorf("Nodes = %+v", got.Nodes)
	}
	if len(got.Containers) != 1 || got.Containers[0].Children[0] != "B" {
		t.Errorf("Containers = %+v", got.Containers)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"a.json":      FormatJSON,
		"a.toml":      FormatTOML,
		"dir/b.TOML":  FormatTOML,
		"noextension": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
