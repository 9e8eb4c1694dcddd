package commandhub

import (
	"fmt"

	"github.com/autopeer-io/commandhub/internal/commandhub/actions"
	"github.com/autopeer-io/commandhub/internal/commandhub/backend"
	"github.com/autopeer-io/commandhub/internal/commandhub/core"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/executor"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/service"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/workflow"
	"github.com/autopeer-io/commandhub/internal/commandhub/notifier"
	"github.com/autopeer-io/commandhub/internal/commandhub/server"
	httpserver "github.com/autopeer-io/commandhub/internal/commandhub/server/http"
	mqttserver "github.com/autopeer-io/commandhub/internal/commandhub/server/mqtt"
	"github.com/autopeer-io/commandhub/internal/commandhub/storage"
	"github.com/autopeer-io/commandhub/pkg/log"
	pkgmqtt "github.com/autopeer-io/commandhub/pkg/mqtt"
	"github.com/autopeer-io/commandhub/pkg/options"
)

type Config struct {
	HttpOptions      *options.HttpOptions
	MqttOptions      *options.MqttOptions
	S3Options        *options.S3Options
	BackendOptions   *options.BackendOptions
	SessionOptions   *options.SessionOptions
	RateLimitOptions *options.RateLimitOptions
	WorkflowOptions  *options.WorkflowOptions
}

// NewCommandHub wires the adapters into the core and the core into the servers.
func (cfg *Config) NewCommandHub() (*CommandHub, error) {
	logger := log.Std()

	// 1. Outbound adapters
	client := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendOptions.BaseURL,
		Token:   cfg.BackendOptions.Token,
		Timeout: cfg.BackendOptions.Timeout,
	}, logger)

	notifiers := []core.Notifier{notifier.Context{}, notifier.NewLogNotifier(logger)}
	var mqttSrv *mqttserver.Server
	if cfg.MqttOptions.Enabled() {
		mqttClient, err := pkgmqtt.NewClient(cfg.MqttOptions.ToClientConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to init mqtt client: %w", err)
		}
		notifiers = append(notifiers, notifier.NewMQTTNotifier(mqttClient, cfg.MqttOptions.TopicRoot, cfg.MqttOptions.QoS, logger))
		mqttSrv = mqttserver.NewServer(mqttClient, logger)
	}

	var execOpts []executor.Option
	var reports storage.Provider
	if cfg.S3Options.Enabled() {
		p, err := storage.NewMinIOProvider(cfg.S3Options, logger)
		if err != nil {
			return nil, err
		}
		reports = p
		execOpts = append(execOpts, executor.WithReportStore(p))
	}

	// 2. Core
	reg, err := actions.NewRegistry(client)
	if err != nil {
		return nil, fmt.Errorf("failed to build action registry: %w", err)
	}
	policy, err := workflow.ParseConflictPolicy(cfg.WorkflowOptions.ConflictPolicy)
	if err != nil {
		return nil, err
	}
	exec := executor.New(notifier.NewMulti(notifiers...), logger, execOpts...)
	svc := service.New(reg, exec, service.Config{
		IdleTTL:         cfg.SessionOptions.IdleTTL,
		CleanupInterval: cfg.SessionOptions.CleanupInterval,
		ConflictPolicy:  policy,
	}, logger)

	// 3. Inbound servers
	limiter := httpserver.NewRateLimiter(
		cfg.RateLimitOptions.Enabled,
		cfg.RateLimitOptions.RequestsPerSecond,
		cfg.RateLimitOptions.Burst,
	)
	var checks []httpserver.ReadinessCheck
	servers := []server.Server{}
	if mqttSrv != nil {
		checks = append(checks, mqttSrv.Ready)
		servers = append(servers, mqttSrv)
	}
	httpSrv := httpserver.NewServer(cfg.HttpOptions, httpserver.NewHandler(svc, reports), limiter, logger, checks...)
	servers = append(servers, httpSrv)

	logger.Info("Command hub configured",
		"actions", reg.Len(),
		"backend", cfg.BackendOptions.BaseURL,
		"mqtt", cfg.MqttOptions.Enabled(),
		"reports", cfg.S3Options.Enabled(),
		"conflictPolicy", string(policy))

	return &CommandHub{
		manager: server.NewManager(servers...),
		storage: reports,
		limiter: limiter,
	}, nil
}
