package options

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		addr    string
		wantErr bool
	}{
		{"0.0.0.0:8080", false},
		{":8080", false},
		{"localhost:9000", false},
		{"8080", true},
		{"0.0.0.0:http", true},
		{"0.0.0.0:70000", true},
		{"not-an-ip:80", true},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if err := ValidateAddress(tt.addr); (err != nil) != tt.wantErr {
				t.Errorf("ValidateAddress(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultsValidate(t *testing.T) {
	all := map[string]IOptions{
		"http":      NewHttpOptions(),
		"mqtt":      NewMqttOptions(),
		"s3":        NewS3Options(),
		"backend":   NewBackendOptions(),
		"session":   NewSessionOptions(),
		"ratelimit": NewRateLimitOptions(),
		"workflow":  NewWorkflowOptions(),
	}
	for name, o := range all {
		if errs := o.Validate(); len(errs) != 0 {
			t.Errorf("%s defaults: unexpected errors %v", name, errs)
		}
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		opts IOptions
		want int
	}{
		{"bad http", &HttpOptions{Addr: "nowhere", Timeout: 0}, 2},
		{"bad backend", &BackendOptions{BaseURL: "/relative", Timeout: -time.Second}, 2},
		{"missing backend url", &BackendOptions{Timeout: time.Second}, 1},
		{"bad session", &SessionOptions{}, 2},
		{"bad ratelimit", &RateLimitOptions{Enabled: true}, 2},
		{"disabled ratelimit", &RateLimitOptions{}, 0},
		{"bad workflow", &WorkflowOptions{ConflictPolicy: "queue"}, 1},
		{"s3 without credentials", &S3Options{Endpoint: "minio.local:9000", BucketName: "r"}, 1},
		{"mqtt bad qos and scheme", &MqttOptions{Broker: "http://broker", QoS: 3, TopicRoot: "x"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errs := tt.opts.Validate(); len(errs) != tt.want {
				t.Errorf("got %d errors (%v), want %d", len(errs), errs, tt.want)
			}
		})
	}
}

func TestMqttToClientConfig(t *testing.T) {
	o := NewMqttOptions()
	o.Broker = "tcp://localhost:1883"
	cfg := o.ToClientConfig()
	if cfg.ClientID == "" {
		t.Error("expected a generated client id")
	}
	if cfg.KeepAlive != 60 {
		t.Errorf("KeepAlive = %d, want 60", cfg.KeepAlive)
	}
}

func TestAddFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	w := NewWorkflowOptions()
	r := NewRateLimitOptions()
	w.AddFlags(fs)
	r.AddFlags(fs)

	if err := fs.Parse([]string{"--workflow.conflict-policy=reject", "--ratelimit.burst=5"}); err != nil {
		t.Fatal(err)
	}
	if w.ConflictPolicy != ConflictPolicyReject || r.Burst != 5 {
		t.Errorf("flags not bound: policy=%q burst=%d", w.ConflictPolicy, r.Burst)
	}
}
