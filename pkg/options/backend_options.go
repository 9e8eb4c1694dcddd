package options

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*BackendOptions)(nil)

// BackendOptions configures the client for the admin REST backend.
type BackendOptions struct {
	// BaseURL is the scheme and host the /api/... endpoints live under.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// Token is sent as "Authorization: Bearer <token>". Empty sends no header.
	Token string `json:"token" mapstructure:"token"`

	// Timeout bounds every backend call.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewBackendOptions creates a BackendOptions object with default parameters.
func NewBackendOptions() *BackendOptions {
	return &BackendOptions{
		BaseURL: "http://localhost:3000",
		Timeout: 15 * time.Second,
	}
}

// Validate checks the base URL and timeout.
func (o *BackendOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}
	if o.BaseURL == "" {
		errs = append(errs, errors.New("--backend.base-url is required"))
	} else if u, err := url.Parse(o.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("--backend.base-url %q must be an absolute URL", o.BaseURL))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("--backend.timeout must be positive, got %s", o.Timeout))
	}
	return errs
}

// AddFlags adds flags for BackendOptions to the specified FlagSet.
func (o *BackendOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.BaseURL, "backend.base-url", o.BaseURL, "Base URL of the admin REST backend.")
	fs.StringVar(&o.Token, "backend.token", o.Token, "Bearer token forwarded to the admin REST backend.")
	fs.DurationVar(&o.Timeout, "backend.timeout", o.Timeout, "Timeout for a single backend request.")
}
