package client

import (
	"context"
	"fmt"
	"io"

	"emsctl/internal/config"
	"emsctl/internal/credentials"
	"emsctl/pkg/logging"
)

// NewFromConfig builds the credential store selected by cfg and a Client
// on top of it. The returned closer releases the store's connections.
func NewFromConfig(ctx context.Context, cfg config.Config, opts ...Option) (*Client, io.Closer, error) {
	store, closer, err := NewStoreFromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	base := []Option{
		WithLogger(logging.Logger("Client")),
		WithTimeout(cfg.Server.Timeout),
		WithRefreshTimeout(cfg.Refresh.Timeout),
		WithProactiveRefresh(cfg.Refresh.ProactiveMargin),
	}
	c, err := New(cfg.Server.BaseURL, store, append(base, opts...)...)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return c, closer, nil
}

// NewStoreFromConfig creates the durable slot named by cfg.Session.Store
// paired with an in-memory session slot.
func NewStoreFromConfig(ctx context.Context, cfg config.Config) (*credentials.Store, io.Closer, error) {
	logger := logging.Logger("Credentials")

	switch cfg.Session.Store {
	case config.StoreRedis:
		r := cfg.Session.Redis
		rdb, err := credentials.DialRedis(ctx, r.Addr, r.Password, r.DB)
		if err != nil {
			return nil, nil, err
		}
		slot := credentials.NewRedisSlot(rdb, r.Prefix, r.TTL, logger)
		return credentials.NewStore(slot, credentials.NewMemorySlot(), credentials.WithLogger(logger)), rdb, nil

	case config.StoreFile, "":
		slot, err := credentials.NewFileSlot(cfg.Session.StorageDir, logger)
		if err != nil {
			return nil, nil, err
		}
		return credentials.NewStore(slot, credentials.NewMemorySlot(), credentials.WithLogger(logger)), nopCloser{}, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
