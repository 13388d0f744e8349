package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nba-props-go/logging"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

func (c Config) uri() string {
	if c.Username != "" && c.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=%s",
			c.Username, c.Password, c.Host, c.Port, c.Database, c.Database)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s", c.Host, c.Port, c.Database)
}

// MongoDB wraps a client and the prediction database handle.
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logging.Logger
}

// NewMongoConnection connects and verifies the server is reachable
// before returning.
func NewMongoConnection(cfg Config) (*MongoDB, error) {
	logger := logging.WithPrefix("MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.uri()))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Infof("Connected to %s:%s database=%s auth=%t",
		cfg.Host, cfg.Port, cfg.Database, cfg.Username != "")

	return &MongoDB{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger,
	}, nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		m.logger.Errorf("Disconnect failed: %v", err)
		return err
	}
	m.logger.Info("Connection closed")
	return nil
}

// TestConnection pings the server, used by the status endpoint.
func (m *MongoDB) TestConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func (m *MongoDB) GetCollection(name string) *mongo.Collection {
	return m.db.Collection(name)
}
