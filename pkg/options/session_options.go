package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*SessionOptions)(nil)

// SessionOptions controls how long idle operator sessions are kept.
type SessionOptions struct {
	IdleTTL         time.Duration `json:"idle-ttl" mapstructure:"idle-ttl"`
	CleanupInterval time.Duration `json:"cleanup-interval" mapstructure:"cleanup-interval"`
}

func NewSessionOptions() *SessionOptions {
	return &SessionOptions{
		IdleTTL:         30 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

func (o *SessionOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}
	if o.IdleTTL <= 0 {
		errs = append(errs, fmt.Errorf("--session.idle-ttl must be positive, got %s", o.IdleTTL))
	}
	if o.CleanupInterval <= 0 {
		errs = append(errs, fmt.Errorf("--session.cleanup-interval must be positive, got %s", o.CleanupInterval))
	}
	return errs
}

func (o *SessionOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.DurationVar(&o.IdleTTL, "session.idle-ttl", o.IdleTTL, "Idle time after which an operator session and its open modal are dropped.")
	fs.DurationVar(&o.CleanupInterval, "session.cleanup-interval", o.CleanupInterval, "How often expired sessions are purged.")
}
