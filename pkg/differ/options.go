package differ

// Fields that can be left out of a comparison.
const (
	FieldName        = "name"
	FieldRegion      = "region"
	FieldCoordinates = "coordinates"
)

// Option is a functional option for configuring Differ
type Option func(*differ)

// WithIgnoredFields sets fields to ignore during comparison
func WithIgnoredFields(fields ...string) Option {
	return func(d *differ) {
		for _, field := range fields {
			d.ignoreFields[field] = true
		}
	}
}

// WithTolerance ignores coordinate changes of at most degrees
func WithTolerance(degrees float64) Option {
	return func(d *differ) {
		if degrees >= 0 {
			d.tolerance = degrees
		}
	}
}
