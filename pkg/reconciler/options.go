package reconciler

import (
	"github.com/agentstation/radarmap/pkg/constants"
	"github.com/agentstation/radarmap/pkg/errors"
	"github.com/agentstation/radarmap/pkg/stations"
)

// options configures a reconciler.
type options struct {
	primary    stations.Type
	primaryLOD float64
	otherLOD   float64
}

func defaultOptions() *options {
	return &options{
		primary:    stations.TypeNEXRAD,
		primaryLOD: constants.PrimaryLOD,
		otherLOD:   constants.SecondaryLOD,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithPrimaryType sets the station type that gets the coarse display priority.
func WithPrimaryType(t stations.Type) Option {
	return func(o *options) error {
		if t == "" {
			return &errors.ValidationError{
				Field:   "primary_type",
				Message: "cannot be empty",
			}
		}
		o.primary = t
		return nil
	}
}

// WithLOD sets the display priorities of new primary and other stations.
func WithLOD(primary, other float64) Option {
	return func(o *options) error {
		if primary <= 0 {
			return &errors.ValidationError{
				Field:   "primary_lod",
				Value:   primary,
				Message: "must be positive",
			}
		}
		if other <= 0 {
			return &errors.ValidationError{
				Field:   "other_lod",
				Value:   other,
				Message: "must be positive",
			}
		}
		o.primaryLOD = primary
		o.otherLOD = other
		return nil
	}
}
