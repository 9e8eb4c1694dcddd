package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/autopeer-io/commandhub/internal/commandhub/core"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/pkg/log"
)

type published struct {
	topic   string
	qos     int
	payload []byte
}

type fakeClient struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (c *fakeClient) Start(context.Context) error           { return nil }
func (c *fakeClient) Disconnect(context.Context)            {}
func (c *fakeClient) AwaitConnection(context.Context) error { return nil }
func (c *fakeClient) IsConnected() bool                     { return true }

func (c *fakeClient) Publish(_ context.Context, topic string, qos int, _ bool, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.msgs = append(c.msgs, published{topic: topic, qos: qos, payload: payload})
	return nil
}

func TestMQTTNotifierPublishesPerSession(t *testing.T) {
	client := &fakeClient{}
	n := NewMQTTNotifier(client, "commandhub/v1", 1, nil)
	n.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	n.Success(core.WithSessionID(context.Background(), "s-1"), "Vehicle paused successfully!")
	n.Error(context.Background(), "Failed to clear cache. Please try again.")

	require.Len(t, client.msgs, 2)
	assert.Equal(t, "commandhub/v1/notifications/s-1", client.msgs[0].topic)
	assert.Equal(t, 1, client.msgs[0].qos)
	assert.Equal(t, "commandhub/v1/notifications/broadcast", client.msgs[1].topic)

	var got model.Notification
	require.NoError(t, json.Unmarshal(client.msgs[0].payload, &got))
	assert.Equal(t, model.LevelSuccess, got.Level)
	assert.Equal(t, "Vehicle paused successfully!", got.Message)
	assert.Equal(t, "s-1", got.SessionID)
}

func TestMQTTNotifierSwallowsPublishErrors(t *testing.T) {
	zc, logs := observer.New(zapcore.DebugLevel)
	n := NewMQTTNotifier(&fakeClient{err: errors.New("connection down")}, "root", 0, log.NewFromZap(zap.New(zc)))

	assert.NotPanics(t, func() { n.Success(context.Background(), "hi") })
	assert.Equal(t, 1, logs.FilterMessage("Failed to publish notification").Len())
}

func TestMultiAndRecorder(t *testing.T) {
	client := &fakeClient{}
	m := NewMulti(NewMQTTNotifier(client, "r", 0, nil), nil, Context{}, NewLogNotifier(nil))
	assert.Len(t, m, 3)

	rec := &Recorder{}
	ctx := WithRecorder(core.WithSessionID(context.Background(), "s-9"), rec)
	m.Success(ctx, "ok")
	m.Error(ctx, "bad")

	got := rec.Notifications()
	require.Len(t, got, 2)
	assert.Equal(t, model.LevelSuccess, got[0].Level)
	assert.Equal(t, "bad", got[1].Message)
	assert.Equal(t, "s-9", got[1].SessionID)
	assert.Len(t, client.msgs, 2)

	// Without a recorder in the context, Context is a no-op.
	Context{}.Success(context.Background(), "dropped")
	assert.Len(t, rec.Notifications(), 2)
}
