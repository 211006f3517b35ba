package cmd

// Options holds the shared command-line options for the echodeck CLI.
type Options struct {
	Format    string
	Category  string
	Source    string
	Limit     int
	Verbosity int
	Addr      string
	TUI       *bool // nil = auto-detect, true = force TUI, false = disable TUI
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format (table, json, markdown).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithCategory sets the stream category filter.
func WithCategory(category string) Option {
	return func(o *Options) {
		o.Category = category
	}
}

// WithSource sets the stream source filter.
func WithSource(source string) Option {
	return func(o *Options) {
		o.Source = source
	}
}

// WithLimit sets the maximum number of results.
func WithLimit(limit int) Option {
	return func(o *Options) {
		o.Limit = limit
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithAddr sets the serve listen address.
func WithAddr(addr string) Option {
	return func(o *Options) {
		o.Addr = addr
	}
}

// WithTUI controls TUI mode (nil = auto-detect, true = force, false = disable).
func WithTUI(tui *bool) Option {
	return func(o *Options) {
		o.TUI = tui
	}
}
