package graph

import "fmt"

// Record constants shared with rendering consumers.
const (
	// NodeTypeGroup marks a node record that represents a container.
	NodeTypeGroup = "group"

	// ExtentParent confines a child record to its parent's bounds.
	ExtentParent = "parent"

	// EdgeTypeSmoothStep is the curve type used for every edge record.
	EdgeTypeSmoothStep = "smoothstep"
)

// Position is a top-left corner in canvas units.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// NodeData carries display data for a node record.
type NodeData struct {
	Label string `json:"label" bson:"label"`
}

// ContainerStyle is the fixed visual treatment of container records:
// a rounded rectangle with a border and a translucent fill.
type ContainerStyle struct {
	BorderRadius float64 `json:"borderRadius" bson:"border_radius"`
	Border       string  `json:"border" bson:"border"`
	Background   string  `json:"backgroundColor" bson:"background_color"`
}

// DefaultContainerStyle returns the container visual marker.
func DefaultContainerStyle() *ContainerStyle {
	return &ContainerStyle{
		BorderRadius: 8,
		Border:       "1px solid #94a3b8",
		Background:   "rgba(148, 163, 184, 0.12)",
	}
}

// NodeRecord is a positioned node, container or container child.
//
// For top-level records Position is absolute. For children (ParentID set)
// Position is relative to the parent's top-left corner and Extent is
// [ExtentParent].
type NodeRecord struct {
	ID        string          `json:"id" bson:"id"`
	Type      string          `json:"type,omitempty" bson:"type,omitempty"`
	Position  Position        `json:"position" bson:"position"`
	Width     float64         `json:"width" bson:"width"`
	Height    float64         `json:"height" bson:"height"`
	Data      NodeData        `json:"data" bson:"data"`
	Draggable bool            `json:"draggable" bson:"draggable"`
	ParentID  string          `json:"parentId,omitempty" bson:"parent_id,omitempty"`
	Extent    string          `json:"extent,omitempty" bson:"extent,omitempty"`
	Style     *ContainerStyle `json:"style,omitempty" bson:"style,omitempty"`

	// Children lists a container's child IDs in column order.
	Children []string `json:"children,omitempty" bson:"children,omitempty"`
	// Fragment is the prefix of the insertion that created the record.
	Fragment string `json:"fragment,omitempty" bson:"fragment,omitempty"`
}

// IsContainer reports whether the record represents a container.
func (n *NodeRecord) IsContainer() bool { return n.Type == NodeTypeGroup }

// IsChild reports whether the record lives inside a container.
func (n *NodeRecord) IsChild() bool { return n.ParentID != "" }

// EdgeRecord is a rendered edge. Animated is always false.
type EdgeRecord struct {
	ID       string `json:"id" bson:"id"`
	Source   string `json:"source" bson:"source"`
	Target   string `json:"target" bson:"target"`
	Type     string `json:"type" bson:"type"`
	Animated bool   `json:"animated" bson:"animated"`
}

// EdgeID derives the record ID of the edge source→target.
func EdgeID(source, target string) string {
	return fmt.Sprintf("edge-%s-%s", source, target)
}

// NewEdgeRecord builds the record for source→target.
func NewEdgeRecord(source, target string) EdgeRecord {
	return EdgeRecord{
		ID:     EdgeID(source, target),
		Source: source,
		Target: target,
		Type:   EdgeTypeSmoothStep,
	}
}
