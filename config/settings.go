package config

// Resolution represents a window size option
type Resolution struct {
	Width  int
	Height int
	Label  string
}

// SettingsMenuConfig contains settings screen configuration
type SettingsMenuConfig struct {
	Resolutions            []Resolution
	DefaultResolutionIndex int
	ZoomLevels             []float64
}

// SettingsMenu is the global settings menu configuration
var SettingsMenu SettingsMenuConfig

func init() {
	SettingsMenu = SettingsMenuConfig{
		Resolutions: []Resolution{
			{Width: 640, Height: 360, Label: "640 x 360"},
			{Width: 1280, Height: 720, Label: "1280 x 720"},
			{Width: 1600, Height: 900, Label: "1600 x 900"},
			{Width: 1920, Height: 1080, Label: "1920 x 1080"},
		},
		DefaultResolutionIndex: 0,
		ZoomLevels:             []float64{1, 1.5, 2, 3, 4},
	}
}

// ResolutionIndex returns the index of the option matching w x h, or the
// default when none matches.
func (s SettingsMenuConfig) ResolutionIndex(w, h int) int {
	for i, r := range s.Resolutions {
		if r.Width == w && r.Height == h {
			return i
		}
	}
	return s.DefaultResolutionIndex
}

// PrevZoom returns the zoom level before z, wrapping to the last.
func (s SettingsMenuConfig) PrevZoom(z float64) float64 {
	if len(s.ZoomLevels) == 0 {
		return z
	}
	for i := len(s.ZoomLevels) - 1; i >= 0; i-- {
		if s.ZoomLevels[i] < z {
			return s.ZoomLevels[i]
		}
	}
	return s.ZoomLevels[len(s.ZoomLevels)-1]
}

// NextZoom returns the zoom level after z, wrapping to the first.
func (s SettingsMenuConfig) NextZoom(z float64) float64 {
	if len(s.ZoomLevels) == 0 {
		return z
	}
	for _, lvl := range s.ZoomLevels {
		if lvl > z {
			return lvl
		}
	}
	return s.ZoomLevels[0]
}
