package emit

// DefaultWidth is the column limit for annotations and attributes.
const DefaultWidth = 120

// minWidth keeps "// [RECOMMENDED] G.X" readable on narrow settings.
const minWidth = 40

// Options controls block layout. The zero value renders with defaults.
type Options struct {
	// Width is the column limit used for wrapping; 0 means DefaultWidth.
	Width int
	// NoHeader drops the banner of reference links.
	NoHeader bool
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Width < minWidth {
		o.Width = minWidth
	}
	return o
}
