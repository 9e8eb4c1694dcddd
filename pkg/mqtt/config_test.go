package mqtt

import (
	"testing"
	"time"
)

func TestClientConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ClientConfig
		wantErr bool
	}{
		{"valid tcp", ClientConfig{BrokerURL: "tcp://localhost:1883", ClientID: "commandhub"}, false},
		{"valid websocket", ClientConfig{BrokerURL: "wss://broker.example.com/mqtt", ClientID: "commandhub"}, false},
		{"missing broker", ClientConfig{ClientID: "commandhub"}, true},
		{"unsupported scheme", ClientConfig{BrokerURL: "http://localhost:1883", ClientID: "commandhub"}, true},
		{"missing client id", ClientConfig{BrokerURL: "tcp://localhost:1883"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewClientAppliesDefaults(t *testing.T) {
	cfg := &ClientConfig{BrokerURL: "tcp://localhost:1883", ClientID: "commandhub"}
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if cfg.KeepAlive != 60 || cfg.ConnectTimeout != 5*time.Second {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if c.IsConnected() {
		t.Error("client must not report connected before Start")
	}
	if err := c.Publish(t.Context(), "t", 0, false, nil); err == nil {
		t.Error("expected publish before Start to fail")
	}
}

func TestNewClientRejectsNil(t *testing.T) {
	if _, err := NewClient(nil); err == nil {
		t.Error("expected error for nil config")
	}
}
