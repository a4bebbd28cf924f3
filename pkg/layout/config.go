package layout

import lcerrors "github.com/matzehuels/layercanvas/pkg/errors"

// Default layout dimensions in canvas units.
const (
	DefaultNodeWidth        = 172.0
	DefaultNodeHeight       = 36.0
	DefaultContainerPadding = 20.0
	DefaultNodeGap          = 50.0
	DefaultRankGap          = 80.0
	DefaultInteriorGap      = 20.0
)

// Config holds the fixed dimensions used by every layout step.
type Config struct {
	// NodeWidth and NodeHeight size nodes that do not specify their own size,
	// and empty containers.
	NodeWidth  float64 `toml:"node_width" json:"nodeWidth"`
	NodeHeight float64 `toml:"node_height" json:"nodeHeight"`

	// ContainerPadding is the inset between a container's border and its children.
	ContainerPadding float64 `toml:"container_padding" json:"containerPadding"`

	// NodeGap separates neighbors within a rank.
	NodeGap float64 `toml:"node_gap" json:"nodeGap"`

	// RankGap separates consecutive ranks.
	RankGap float64 `toml:"rank_gap" json:"rankGap"`

	// InteriorGap separates consecutive children inside a container.
	InteriorGap float64 `toml:"interior_gap" json:"interiorGap"`
}

// DefaultConfig returns the default layout dimensions.
func DefaultConfig() Config {
	return Config{
		NodeWidth:        DefaultNodeWidth,
		NodeHeight:       DefaultNodeHeight,
		ContainerPadding: DefaultContainerPadding,
		NodeGap:          DefaultNodeGap,
		RankGap:          DefaultRankGap,
		InteriorGap:      DefaultInteriorGap,
	}
}

// Validate checks that sizes are positive and gaps are non-negative.
func (c Config) Validate() error {
	if c.NodeWidth <= 0 || c.NodeHeight <= 0 {
		return lcerrors.New(lcerrors.ErrCodeInvalidConfig, "node size must be positive, got %vx%v", c.NodeWidth, c.NodeHeight)
	}
	gaps := []struct {
		name string
		v    float64
	}{
		{"container_padding", c.ContainerPadding},
		{"node_gap", c.NodeGap},
		{"rank_gap", c.RankGap},
		{"interior_gap", c.InteriorGap},
	}
	for _, g := range gaps {
		if g.v < 0 {
			return lcerrors.New(lcerrors.ErrCodeInvalidConfig, "%s must not be negative, got %v", g.name, g.v)
		}
	}
	return nil
}

// SizeOrDefault returns w and h, substituting the default node size for
// zero values.
func (c Config) SizeOrDefault(w, h float64) Size {
	if w <= 0 {
		w = c.NodeWidth
	}
	if h <= 0 {
		h = c.NodeHeight
	}
	return Size{Width: w, Height: h}
}
