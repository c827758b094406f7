package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/AnshRaj112/natpac-travel-backend/internal/config"
	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
)

// Collection names.
const (
	UsersCollection    = "users"
	TripsCollection    = "trips"
	BookingsCollection = "bookings"
)

// Mongo connects lazily on first use and shares one client across callers.
// Concurrent first calls trigger exactly one connect attempt; a failed attempt
// is not remembered, so the next call tries again.
type Mongo struct {
	uri      string
	dbName   string
	maxPool  uint64
	selectTO time.Duration
	socketTO time.Duration
	log      *zap.Logger

	group  singleflight.Group
	client atomic.Pointer[mongo.Client]
	db     atomic.Pointer[mongo.Database]
}

func NewMongo(cfg *config.Config, log *zap.Logger) *Mongo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mongo{
		uri:      cfg.MongoURI,
		dbName:   cfg.MongoDB,
		maxPool:  cfg.MongoMaxPool,
		selectTO: cfg.MongoSelectTO,
		socketTO: cfg.MongoSocketTO,
		log:      log,
	}
}

// Database returns the handle, connecting first if needed.
func (m *Mongo) Database(ctx context.Context) (*mongo.Database, error) {
	if db := m.db.Load(); db != nil {
		return db, nil
	}
	ch := m.group.DoChan("connect", func() (any, error) {
		if db := m.db.Load(); db != nil {
			return db, nil
		}
		return m.connect()
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mongo.Database), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *Mongo) connect() (*mongo.Database, error) {
	// Detached from any single request so one cancelled caller cannot fail the others.
	ctx, cancel := context.WithTimeout(context.Background(), 2*m.selectTO)
	defer cancel()

	opts := options.Client().
		ApplyURI(m.uri).
		SetMaxPoolSize(m.maxPool).
		SetServerSelectionTimeout(m.selectTO).
		SetConnectTimeout(m.selectTO).
		SetSocketTimeout(m.socketTO)

	m.log.Info("connecting to MongoDB", zap.String("database", m.dbName))
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w: %w", errs.ErrUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		m.log.Warn("MongoDB ping failed", zap.Error(err))
		return nil, fmt.Errorf("mongo ping: %w: %w", errs.ErrUnavailable, err)
	}

	db := client.Database(m.dbName)
	// Uniqueness of emails and booking references rests on these indexes, so
	// they are built on every fresh connection, not only at startup.
	if err := EnsureIndexes(ctx, db); err != nil {
		m.log.Warn("ensure MongoDB indexes failed", zap.Error(err))
	}
	m.client.Store(client)
	m.db.Store(db)
	m.log.Info("connected to MongoDB")
	return db, nil
}

// Ping connects if necessary and round-trips the server.
func (m *Mongo) Ping(ctx context.Context) error {
	db, err := m.Database(ctx)
	if err != nil {
		return err
	}
	if err := db.Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w: %w", errs.ErrUnavailable, err)
	}
	return nil
}

// Disconnect closes the shared client, if any.
func (m *Mongo) Disconnect(ctx context.Context) error {
	client := m.client.Swap(nil)
	m.db.Store(nil)
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// EnsureIndexes connects if necessary and creates the application indexes.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	db, err := m.Database(ctx)
	if err != nil {
		return err
	}
	return EnsureIndexes(ctx, db)
}

// EnsureIndexes creates the unique and lookup indexes for every collection.
// CreateMany is idempotent for identical specs.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("idx_email_unique").SetUnique(true),
			},
		},
		TripsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetName("idx_user")},
			{Keys: bson.D{{Key: "start_date", Value: -1}}, Options: options.Index().SetName("idx_start_date")},
		},
		BookingsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetName("idx_user")},
			{
				Keys:    bson.D{{Key: "booking_reference", Value: 1}},
				Options: options.Index().SetName("idx_reference_unique").SetUnique(true),
			},
			{Keys: bson.D{{Key: "created_at", Value: -1}}, Options: options.Index().SetName("idx_created_at")},
		},
	}

	for _, name := range []string{UsersCollection, TripsCollection, BookingsCollection} {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, specs[name]); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}
