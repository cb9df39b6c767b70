package detector

// StaticHost is a ports.Host whose answers are fixed at construction.
type StaticHost struct {
	available bool
	visible   bool
}

// NewStaticHost creates a host for mode. Headless hosts are unavailable;
// every other mode is available and visible.
func NewStaticHost(mode OutputMode) *StaticHost {
	if mode == ModeHeadless {
		return &StaticHost{}
	}
	return &StaticHost{available: true, visible: true}
}

// Available reports whether a render surface exists.
func (h *StaticHost) Available() bool { return h.available }

// Visible reports whether the render surface is shown.
func (h *StaticHost) Visible() bool { return h.visible }
