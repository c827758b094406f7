package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/natpac-travel-backend/internal/database"
	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
)

const opTimeout = 10 * time.Second

// DatabaseSource hands out the database handle, connecting on demand.
// *database.Mongo satisfies it.
type DatabaseSource interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

type staticSource struct{ db *mongo.Database }

func (s staticSource) Database(context.Context) (*mongo.Database, error) { return s.db, nil }

// MongoStore implements Store on MongoDB. Ids are ObjectID hex strings.
type MongoStore struct {
	src DatabaseSource
}

func NewMongoStore(src DatabaseSource) *MongoStore {
	return &MongoStore{src: src}
}

// NewMongoStoreFromDB wraps an already connected database.
func NewMongoStoreFromDB(db *mongo.Database) *MongoStore {
	return &MongoStore{src: staticSource{db: db}}
}

type userDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	models.User `bson:",inline"`
}

type tripDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	models.Trip `bson:",inline"`
}

type bookingDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	models.Booking `bson:",inline"`
}

func (s *MongoStore) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := s.src.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// wrap tags infrastructure failures with errs.ErrUnavailable so callers can
// branch without importing the driver.
func wrap(op string, err error) error {
	if ShouldUseFallback(err) && !errors.Is(err, errs.ErrUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, errs.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	col, err := s.collection(ctx, database.UsersCollection)
	if err != nil {
		return "", wrap("create user", err)
	}
	res, err := col.InsertOne(ctx, userDoc{User: *u})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", errs.ErrDuplicateEmail
		}
		return "", wrap("create user", err)
	}
	id := res.InsertedID.(primitive.ObjectID).Hex()
	u.ID = id
	return id, nil
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *MongoStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	return s.findUser(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	col, err := s.collection(ctx, database.UsersCollection)
	if err != nil {
		return nil, wrap("find user", err)
	}
	var doc userDoc
	if err := col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, wrap("find user", err)
	}
	u := doc.User
	u.ID = doc.ID.Hex()
	return &u, nil
}

func (s *MongoStore) SetConsent(ctx context.Context, userID string, consent bool) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	col, err := s.collection(ctx, database.UsersCollection)
	if err != nil {
		return wrap("set consent", err)
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errs.ErrNotFound
	}

	// Only touch the document when the value actually changes.
	res, err := col.UpdateOne(ctx,
		bson.M{"_id": oid, "consent": bson.M{"$ne": consent}},
		bson.M{"$set": bson.M{"consent": consent, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return wrap("set consent", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrap("set consent", err)
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *MongoStore) CreateTrip(ctx context.Context, t *models.Trip) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	col, err := s.collection(ctx, database.TripsCollection)
	if err != nil {
		return "", wrap("create trip", err)
	}
	res, err := col.InsertOne(ctx, tripDoc{Trip: *t})
	if err != nil {
		return "", wrap("create trip", err)
	}
	id := res.InsertedID.(primitive.ObjectID).Hex()
	t.ID = id
	return id, nil
}

func (s *MongoStore) ListTrips(ctx context.Context, userID string) ([]models.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	col, err := s.collection(ctx, database.TripsCollection)
	if err != nil {
		return nil, wrap("list trips", err)
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	cur, err := col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, wrap("list trips", err)
	}
	var docs []tripDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrap("list trips", err)
	}

	trips := make([]models.Trip, 0, len(docs))
	for _, d := range docs {
		t := d.Trip
		t.ID = d.ID.Hex()
		trips = append(trips, t)
	}
	return trips, nil
}

func (s *MongoStore) CreateBooking(ctx context.Context, b *models.Booking) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	col, err := s.collection(ctx, database.BookingsCollection)
	if err != nil {
		return "", wrap("create booking", err)
	}
	res, err := col.InsertOne(ctx, bookingDoc{Booking: *b})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", errs.ErrDuplicateReference
		}
		return "", wrap("create booking", err)
	}
	id := res.InsertedID.(primitive.ObjectID).Hex()
	b.ID = id
	return id, nil
}

func (s *MongoStore) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	col, err := s.collection(ctx, database.BookingsCollection)
	if err != nil {
		return nil, wrap("list bookings", err)
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, wrap("list bookings", err)
	}
	var docs []bookingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrap("list bookings", err)
	}

	out := make([]models.Booking, 0, len(docs))
	for _, d := range docs {
		b := d.Booking
		b.ID = d.ID.Hex()
		out = append(out, b)
	}
	return out, nil
}

func (s *MongoStore) FindBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	col, err := s.collection(ctx, database.BookingsCollection)
	if err != nil {
		return nil, wrap("find booking", err)
	}
	var doc bookingDoc
	if err := col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, wrap("find booking", err)
	}
	b := doc.Booking
	b.ID = doc.ID.Hex()
	return &b, nil
}

func (s *MongoStore) UpdateBooking(ctx context.Context, userID, bookingID string, patch models.BookingPatch) (*models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	col, err := s.collection(ctx, database.BookingsCollection)
	if err != nil {
		return nil, wrap("update booking", err)
	}

	set := bson.M{"status": patch.Status, "updated_at": patch.UpdatedAt}
	if patch.PaymentStatus != "" {
		set["payment_status"] = patch.PaymentStatus
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bookingDoc
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": oid, "user_id": userID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, wrap("update booking", err)
	}
	b := doc.Booking
	b.ID = doc.ID.Hex()
	return &b, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	db, err := s.src.Database(ctx)
	if err != nil {
		return wrap("ping", err)
	}
	if err := db.Client().Ping(ctx, nil); err != nil {
		return wrap("ping", err)
	}
	return nil
}
