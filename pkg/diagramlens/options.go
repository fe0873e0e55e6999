package diagramlens

// Defaults for the analysis options. None of them is tied to canvas
// scale or zoom; callers with unusual canvases should override them.
const (
	DefaultRadius       = 400.0
	DefaultSummaryLimit = 4
	DefaultShortLimit   = 4
	DefaultDeepLimit    = 6
)

// options holds tunables shared by the neighborhood and prompt builders.
type options struct {
	radius       float64
	summaryLimit int
	shortLimit   int
	deepLimit    int
}

func defaultOptions() options {
	return options{
		radius:       DefaultRadius,
		summaryLimit: DefaultSummaryLimit,
		shortLimit:   DefaultShortLimit,
		deepLimit:    DefaultDeepLimit,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Option configures analysis behavior.
type Option func(*options)

// WithRadius sets the proximity radius.
// Default: 400
//
// Only elements whose centers are strictly closer than the radius count
// as neighbors. Non-positive values are ignored.
func WithRadius(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.radius = r
		}
	}
}

// WithSummaryLimit sets how many neighbors the neighborhood summary names.
// Default: 4
func WithSummaryLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.summaryLimit = n
		}
	}
}

// WithShortLimit sets how many neighbors the short prompt lists.
// Default: 4
func WithShortLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.shortLimit = n
		}
	}
}

// WithDeepLimit sets how many neighbors the deep-dive prompt lists.
// Default: 6
func WithDeepLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.deepLimit = n
		}
	}
}
