package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

var _ IOptions = (*RateLimitOptions)(nil)

// RateLimitOptions configures the per-client token bucket in front of the command API.
type RateLimitOptions struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// RequestsPerSecond is the sustained rate allowed per client.
	RequestsPerSecond float64 `json:"requests-per-second" mapstructure:"requests-per-second"`

	// Burst is the bucket size.
	Burst int `json:"burst" mapstructure:"burst"`
}

func NewRateLimitOptions() *RateLimitOptions {
	return &RateLimitOptions{
		Enabled:           true,
		RequestsPerSecond: 10,
		Burst:             20,
	}
}

func (o *RateLimitOptions) Validate() []error {
	if o == nil || !o.Enabled {
		return nil
	}

	errs := []error{}
	if o.RequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("--ratelimit.requests-per-second must be positive, got %v", o.RequestsPerSecond))
	}
	if o.Burst < 1 {
		errs = append(errs, fmt.Errorf("--ratelimit.burst must be at least 1, got %d", o.Burst))
	}
	return errs
}

func (o *RateLimitOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.BoolVar(&o.Enabled, "ratelimit.enabled", o.Enabled, "Enable per-client rate limiting on the command API.")
	fs.Float64Var(&o.RequestsPerSecond, "ratelimit.requests-per-second", o.RequestsPerSecond, "Sustained requests per second allowed per client.")
	fs.IntVar(&o.Burst, "ratelimit.burst", o.Burst, "Burst size of the per-client token bucket.")
}
