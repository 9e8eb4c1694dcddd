package options

import (
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/commandhub/internal/commandhub"
	"github.com/autopeer-io/commandhub/pkg/log"
	"github.com/autopeer-io/commandhub/pkg/options"
)

type ServerOptions struct {
	HttpOptions      *options.HttpOptions      `json:"http" mapstructure:"http"`
	MqttOptions      *options.MqttOptions      `json:"mqtt" mapstructure:"mqtt"`
	S3Options        *options.S3Options        `json:"s3" mapstructure:"s3"`
	BackendOptions   *options.BackendOptions   `json:"backend" mapstructure:"backend"`
	SessionOptions   *options.SessionOptions   `json:"session" mapstructure:"session"`
	RateLimitOptions *options.RateLimitOptions `json:"ratelimit" mapstructure:"ratelimit"`
	WorkflowOptions  *options.WorkflowOptions  `json:"workflow" mapstructure:"workflow"`
	Log              *log.Options              `json:"log" mapstructure:"log"`
}

func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		HttpOptions:      options.NewHttpOptions(),
		MqttOptions:      options.NewMqttOptions(),
		S3Options:        options.NewS3Options(),
		BackendOptions:   options.NewBackendOptions(),
		SessionOptions:   options.NewSessionOptions(),
		RateLimitOptions: options.NewRateLimitOptions(),
		WorkflowOptions:  options.NewWorkflowOptions(),
		Log:              log.NewOptions(),
	}
}

func (o *ServerOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.HttpOptions.AddFlags(fss.FlagSet("http"))
	o.MqttOptions.AddFlags(fss.FlagSet("mqtt"))
	o.S3Options.AddFlags(fss.FlagSet("s3"))
	o.BackendOptions.AddFlags(fss.FlagSet("backend"))
	o.SessionOptions.AddFlags(fss.FlagSet("session"))
	o.RateLimitOptions.AddFlags(fss.FlagSet("ratelimit"))
	o.WorkflowOptions.AddFlags(fss.FlagSet("workflow"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *ServerOptions) Complete() error {
	return nil
}

func (o *ServerOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.MqttOptions.Validate()...)
	errs = append(errs, o.S3Options.Validate()...)
	errs = append(errs, o.BackendOptions.Validate()...)
	errs = append(errs, o.SessionOptions.Validate()...)
	errs = append(errs, o.RateLimitOptions.Validate()...)
	errs = append(errs, o.WorkflowOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func (o *ServerOptions) Config() (*commandhub.Config, error) {
	return &commandhub.Config{
		HttpOptions:      o.HttpOptions,
		MqttOptions:      o.MqttOptions,
		S3Options:        o.S3Options,
		BackendOptions:   o.BackendOptions,
		SessionOptions:   o.SessionOptions,
		RateLimitOptions: o.RateLimitOptions,
		WorkflowOptions:  o.WorkflowOptions,
	}, nil
}
