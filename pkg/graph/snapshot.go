package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/google/uuid"
)

// Snapshot is the complete, positioned state of one canvas.
//
// Nodes holds top-level nodes, containers and container children. Edges is
// the main (rendered) edge list. Internal holds declared edges between
// children of the same container, which order the container's column but are
// not rendered.
type Snapshot struct {
	ID         string       `json:"id" bson:"_id"`
	Revision   int          `json:"revision" bson:"revision"`
	NextPrefix int          `json:"nextPrefix" bson:"next_prefix"`
	Nodes      []NodeRecord `json:"nodes" bson:"nodes"`
	Edges      []EdgeRecord `json:"edges" bson:"edges"`
	Internal   []EdgeRecord `json:"internal,omitempty" bson:"internal,omitempty"`
}

// NewSnapshot returns an empty snapshot with a fresh random ID.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		ID:    uuid.NewString(),
		Nodes: []NodeRecord{},
		Edges: []EdgeRecord{},
	}
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Nodes = make([]NodeRecord, len(s.Nodes))
	for i, n := range s.Nodes {
		if n.Style != nil {
			style := *n.Style
			n.Style = &style
		}
		n.Children = slices.Clone(n.Children)
		c.Nodes[i] = n
	}
	c.Edges = slices.Clone(s.Edges)
	c.Internal = slices.Clone(s.Internal)
	if c.Edges == nil {
		c.Edges = []EdgeRecord{}
	}
	return &c
}

// Node returns the record with the given ID.
func (s *Snapshot) Node(id string) (*NodeRecord, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}

// TopLevel returns the records that are not container children, in order.
func (s *Snapshot) TopLevel() []NodeRecord {
	var out []NodeRecord
	for _, n := range s.Nodes {
		if !n.IsChild() {
			out = append(out, n)
		}
	}
	return out
}

// ChildrenOf returns the child records of a container, in record order.
func (s *Snapshot) ChildrenOf(containerID string) []NodeRecord {
	var out []NodeRecord
	for _, n := range s.Nodes {
		if n.ParentID == containerID {
			out = append(out, n)
		}
	}
	return out
}

// Bounds returns the bounding box of all top-level records. ok is false for
// an empty canvas.
func (s *Snapshot) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, n := range s.Nodes {
		if n.IsChild() {
			continue
		}
		ok = true
		minX = math.Min(minX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxX = math.Max(maxX, n.Position.X+n.Width)
		maxY = math.Max(maxY, n.Position.Y+n.Height)
	}
	if !ok {
		return 0, 0, 0, 0, false
	}
	return minX, minY, maxX, maxY, true
}

// MarshalSnapshot serializes a snapshot to pretty-printed JSON bytes.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalSnapshot deserializes JSON bytes into a snapshot.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if s.ID == "" {
		return nil, fmt.Errorf("snapshot must have an id")
	}
	if s.Nodes == nil {
		s.Nodes = []NodeRecord{}
	}
	if s.Edges == nil {
		s.Edges = []EdgeRecord{}
	}
	return &s, nil
}

// WriteSnapshotFile writes a snapshot to a JSON file.
func WriteSnapshotFile(s *Snapshot, path string) error {
	data, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSnapshotFile reads a snapshot from a JSON file.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalSnapshot(data)
}
