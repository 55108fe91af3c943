package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Notifier defines the interface for sending notifications.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Multi sends every message to all of its notifiers. A failing notifier does
// not stop the others; their errors are joined.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FromConfig builds the notifiers whose webhook is configured. The result is
// empty when nothing is configured.
func FromConfig() Multi {
	var m Multi
	if url := viper.GetString("notifications.slack.webhook_url"); url != "" {
		m = append(m, Named{Name: "slack", Notifier: NewSlackNotifier(url)})
	}
	if url := viper.GetString("notifications.discord.webhook_url"); url != "" {
		m = append(m, Named{Name: "discord", Notifier: NewDiscordNotifier(url)})
	}
	return m
}

// Named wraps a notifier so its errors carry a provider name.
type Named struct {
	Name string
	Notifier
}

func (n Named) Notify(ctx context.Context, message string) error {
	if err := n.Notifier.Notify(ctx, message); err != nil {
		return fmt.Errorf("%s: %w", n.Name, err)
	}
	return nil
}
