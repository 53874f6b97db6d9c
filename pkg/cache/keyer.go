package cache

import "fmt"

// Keyer derives cache keys. Keys embed a hash of every input that affects
// the cached value.
type Keyer interface {
	// DatasetKey identifies a stored dataset by name.
	DatasetKey(name string) string
	// LayoutKey identifies a layout computed from a dataset with given options.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists the options that change computed geometry.
type LayoutKeyOpts struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Radial     string  `json:"radial"`
	ExtraRings int     `json:"extra_rings"`
	Key        string  `json:"key"`
	Placement  string  `json:"placement"`
}

// ArtifactKeyOpts lists the options that change a rendered output but not
// the layout.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Legend bool    `json:"legend"`
	Popups bool    `json:"popups"`
	Scale  float64 `json:"scale,omitempty"`
	Extra  string  `json:"extra,omitempty"` // Format-specific discriminator, e.g. the HTML dataset switcher
}

// DefaultKeyer produces keys of the form kind:sha256(inputs).
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) DatasetKey(name string) string {
	return fmt.Sprintf("dataset:%s", name)
}

func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
