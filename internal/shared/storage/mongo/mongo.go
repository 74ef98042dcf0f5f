// Package mongo opens the MongoDB client backing the resume store.
package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"resume-builder/internal/shared/telemetry"
)

// DefaultDatabase is used when the URI names no database.
const DefaultDatabase = "test"

// Options controls client connectivity.
type Options struct {
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
	MaxPoolSize    uint64
}

// DefaultOptions returns defaults for a long-running server.
func DefaultOptions() Options {
	return Options{
		ConnectTimeout: 10 * time.Second,
		PingTimeout:    5 * time.Second,
		MaxPoolSize:    20,
	}
}

// Client pairs a connected driver client with the database named by its URI.
type Client struct {
	client   *mongo.Client
	Database *mongo.Database
}

// IsMongoURI reports whether uri uses a MongoDB scheme.
func IsMongoURI(uri string) bool {
	lower := strings.ToLower(strings.TrimSpace(uri))
	return strings.HasPrefix(lower, "mongodb://") || strings.HasPrefix(lower, "mongodb+srv://")
}

// DatabaseName extracts the database path segment from uri.
func DatabaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("parse mongo uri: %w", err)
	}
	if cs.Database == "" {
		return DefaultDatabase, nil
	}
	return cs.Database, nil
}

// Connect creates a client for uri. A failed ping is logged and the client is
// still returned; the driver reconnects on later operations.
func Connect(ctx context.Context, uri string, opts Options) (*Client, error) {
	name, err := DatabaseName(uri)
	if err != nil {
		return nil, err
	}

	clientOpts := options.Client().ApplyURI(uri)
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
		clientOpts.SetServerSelectionTimeout(opts.ConnectTimeout)
	}
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		telemetry.Error("mongo.ping_failed", map[string]any{"database": name, "error": err})
	} else {
		telemetry.Info("mongo.connected", map[string]any{"database": name})
	}

	return &Client{client: client, Database: client.Database(name)}, nil
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}
