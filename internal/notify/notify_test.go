package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

type recordingNotifier struct {
	messages []string
	err      error
}

func (r *recordingNotifier) Notify(ctx context.Context, message string) error {
	r.messages = append(r.messages, message)
	return r.err
}

func TestMulti_Notify(t *testing.T) {
	ok := &recordingNotifier{}
	failing := &recordingNotifier{err: errors.New("webhook down")}
	after := &recordingNotifier{}

	err := Multi{failing, ok, after}.Notify(context.Background(), "regression")

	assert.ErrorContains(t, err, "webhook down")
	assert.Equal(t, []string{"regression"}, ok.messages)
	assert.Equal(t, []string{"regression"}, after.messages, "later notifiers still run")
}

func TestMulti_Empty(t *testing.T) {
	assert.NoError(t, Multi(nil).Notify(context.Background(), "msg"))
}

func TestNamed_WrapsError(t *testing.T) {
	inner := errors.New("boom")
	err := Named{Name: "slack", Notifier: &recordingNotifier{err: inner}}.Notify(context.Background(), "msg")
	assert.EqualError(t, err, "slack: boom")
	assert.ErrorIs(t, err, inner)
}

func TestFromConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	assert.Empty(t, FromConfig())

	viper.Set("notifications.slack.webhook_url", "https://hooks.slack.com/services/x")
	m := FromConfig()
	if assert.Len(t, m, 1) {
		assert.Equal(t, "slack", m[0].(Named).Name)
	}

	viper.Set("notifications.discord.webhook_url", "https://discord.com/api/webhooks/x")
	m = FromConfig()
	if assert.Len(t, m, 2) {
		assert.Equal(t, "discord", m[1].(Named).Name)
	}
}
