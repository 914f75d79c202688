package postscmd

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blogkit/internal/commands"
	"github.com/goliatone/go-blogkit/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the handlers produced by RegisterPostsCommands.
type HandlerSet struct {
	List   *ListPostsHandler
	Render *RenderPostHandler
	Feed   *BuildFeedHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	timeout time.Duration
	clock   func() time.Time
}

// WithTimeout bounds every registered handler. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *options) {
		cfg.timeout = timeout
	}
}

// WithClock stamps feeds built without an explicit time.
func WithClock(clock func() time.Time) Option {
	return func(cfg *options) {
		cfg.clock = clock
	}
}

// RegisterPostsCommands builds the post handlers and registers them with reg
// when it is non-nil.
func RegisterPostsCommands(reg CommandRegistry, service Service, presenter Presenter, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("posts command registration: service is nil")
	}

	cfg := options{timeout: commands.DefaultCommandTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "posts")
	set := &HandlerSet{
		List:   NewListPostsHandler(service, presenter, logger, commands.WithTimeout[ListPostsCommand](cfg.timeout)),
		Render: NewRenderPostHandler(service, presenter, logger, commands.WithTimeout[RenderPostCommand](cfg.timeout)),
		Feed:   NewBuildFeedHandler(service, presenter, logger, cfg.clock, commands.WithTimeout[BuildFeedCommand](cfg.timeout)),
	}

	if reg != nil {
		for _, handler := range []any{set.List, set.Render, set.Feed} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// RegisterFeedCron rebuilds the feed on the schedule in cfg. The handler runs
// with a background context.
func RegisterFeedCron(reg CronRegistrar, handler *BuildFeedHandler, cfg command.HandlerConfig, msg BuildFeedCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
