package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	lcerrors "github.com/matzehuels/layercanvas/pkg/errors"
)

// Supported fragment file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Fragment is one batch of nodes, edges and containers submitted together.
// All IDs are fragment-local and unprefixed.
type Fragment struct {
	Nodes      []FragmentNode      `json:"nodes" toml:"nodes"`
	Edges      []FragmentEdge      `json:"edges,omitempty" toml:"edges,omitempty"`
	Containers []FragmentContainer `json:"containers,omitempty" toml:"containers,omitempty"`
}

// FragmentNode describes a node. Zero width or height means "use the
// configured default"; an empty label means "use the unprefixed ID".
type FragmentNode struct {
	ID     string  `json:"id" toml:"id"`
	Label  string  `json:"label,omitempty" toml:"label,omitempty"`
	Width  float64 `json:"width,omitempty" toml:"width,omitempty"`
	Height float64 `json:"height,omitempty" toml:"height,omitempty"`
}

// FragmentEdge is a directed edge between two fragment IDs.
type FragmentEdge struct {
	Source string `json:"source" toml:"source"`
	Target string `json:"target" toml:"target"`
}

// FragmentContainer groups an ordered list of child node IDs.
type FragmentContainer struct {
	ID       string   `json:"id" toml:"id"`
	Label    string   `json:"label,omitempty" toml:"label,omitempty"`
	Children []string `json:"children" toml:"children"`
}

// IsEmpty reports whether the fragment carries nothing to insert.
func (f Fragment) IsEmpty() bool {
	return len(f.Nodes) == 0 && len(f.Edges) == 0 && len(f.Containers) == 0
}

// Validate checks that every ID in the fragment is well-formed and that no
// node or container ID is declared twice. It does not check edge endpoints:
// dangling edges are recovered during insertion, not rejected up front.
func (f Fragment) Validate() error {
	seen := make(map[string]string, len(f.Nodes)+len(f.Containers))
	for _, n := range f.Nodes {
		if err := lcerrors.ValidateID("node", n.ID); err != nil {
			return err
		}
		if n.Width < 0 || n.Height < 0 {
			return lcerrors.New(lcerrors.ErrCodeInvalidFragment, "node %q has negative size", n.ID)
		}
		if kind, ok := seen[n.ID]; ok {
			return lcerrors.New(lcerrors.ErrCodeInvalidFragment, "node %q already declared as %s", n.ID, kind)
		}
		seen[n.ID] = "node"
	}
	for _, c := range f.Containers {
		if err := lcerrors.ValidateID("container", c.ID); err != nil {
			return err
		}
		if kind, ok := seen[c.ID]; ok {
			return lcerrors.New(lcerrors.ErrCodeInvalidFragment, "container %q already declared as %s", c.ID, kind)
		}
		seen[c.ID] = "container"
		for _, child := range c.Children {
			if err := lcerrors.ValidateID("child", child); err != nil {
				return err
			}
		}
	}
	for _, e := range f.Edges {
		if err := lcerrors.ValidateID("edge source", e.Source); err != nil {
			return err
		}
		if err := lcerrors.ValidateID("edge target", e.Target); err != nil {
			return err
		}
	}
	return nil
}

// FormatFromPath infers the fragment format from a file extension.
// Unknown extensions default to JSON.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// ReadFragment decodes a fragment in the given format from r and validates it.
func ReadFragment(r io.Reader, format string) (Fragment, error) {
	var f Fragment
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&f); err != nil {
			return Fragment{}, lcerrors.Wrap(lcerrors.ErrCodeInvalidFragment, err, "decode json fragment")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
			return Fragment{}, lcerrors.Wrap(lcerrors.ErrCodeInvalidFragment, err, "decode toml fragment")
		}
	default:
		return Fragment{}, lcerrors.New(lcerrors.ErrCodeInvalidFormat, "unsupported fragment format %q", format)
	}
	if err := f.Validate(); err != nil {
		return Fragment{}, err
	}
	return f, nil
}

// ReadFragmentFile reads a fragment file, inferring the format from its
// extension.
func ReadFragmentFile(path string) (Fragment, error) {
	if err := lcerrors.ValidatePath(path); err != nil {
		return Fragment{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Fragment{}, fmt.Errorf("read %s: %w", path, err)
	}
	f, err := ReadFragment(bytes.NewReader(data), FormatFromPath(path))
	if err != nil {
		return Fragment{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WriteFragment encodes a fragment in the given format.
func WriteFragment(f Fragment, w io.Writer, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(f); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	default:
		return lcerrors.New(lcerrors.ErrCodeInvalidFormat, "unsupported fragment format %q", format)
	}
}
