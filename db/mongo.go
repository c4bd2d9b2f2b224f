package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"oasis/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps every table of the booking site in one Mongo database.
type MongoStore struct {
	Client             *mongo.Client
	CabinsCollection   *mongo.Collection
	GuestsCollection   *mongo.Collection
	BookingsCollection *mongo.Collection
	SettingsCollection *mongo.Collection
	ContactCollection  *mongo.Collection
}

// ConnectMongo dials uri and binds the collections of database dbName.
func ConnectMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	database := client.Database(dbName)
	s := &MongoStore{
		Client:             client,
		CabinsCollection:   database.Collection(CabinsTable),
		GuestsCollection:   database.Collection(GuestsTable),
		BookingsCollection: database.Collection(BookingsTable),
		SettingsCollection: database.Collection(SettingsTable),
		ContactCollection:  database.Collection(ContactTable),
	}
	if err := s.CreateIndexes(ctx); err != nil {
		log.Printf("[db] index creation failed: %v", err)
	}
	return s, nil
}

// CreateIndexes makes guest email unique and covers the booking lookups.
func (s *MongoStore) CreateIndexes(ctx context.Context) error {
	if _, err := s.GuestsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	_, err := s.BookingsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "cabinId", Value: 1}, {Key: "startDate", Value: 1}}},
		{Keys: bson.D{{Key: "guestId", Value: 1}, {Key: "startDate", Value: 1}}},
	})
	return err
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}
	return err
}

func (s *MongoStore) Cabins(ctx context.Context) ([]models.Cabin, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.M{"description": 0})
	cur, err := s.CabinsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	cabins := []models.Cabin{}
	if err := cur.All(ctx, &cabins); err != nil {
		return nil, err
	}
	return cabins, nil
}

func (s *MongoStore) Cabin(ctx context.Context, id string) (models.Cabin, error) {
	var c models.Cabin
	err := s.CabinsCollection.FindOne(ctx, bson.M{"id": id}).Decode(&c)
	return c, notFound(err)
}

func (s *MongoStore) Settings(ctx context.Context) (models.Settings, error) {
	var st models.Settings
	err := s.SettingsCollection.FindOne(ctx, bson.M{}).Decode(&st)
	return st, notFound(err)
}

func (s *MongoStore) GuestByEmail(ctx context.Context, email string) (models.Guest, error) {
	var g models.Guest
	err := s.GuestsCollection.FindOne(ctx, bson.M{"email": email}).Decode(&g)
	return g, notFound(err)
}

func (s *MongoStore) CreateGuest(ctx context.Context, g models.Guest) error {
	_, err := s.GuestsCollection.InsertOne(ctx, g)
	return err
}

func (s *MongoStore) UpdateGuest(ctx context.Context, guestID string, u models.GuestProfileUpdate) error {
	res, err := s.GuestsCollection.UpdateOne(ctx,
		bson.M{"id": guestID},
		bson.M{"$set": bson.M{
			"nationality": u.Nationality,
			"countryFlag": u.CountryFlag,
			"nationalID":  u.NationalID,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *MongoStore) ActiveBookings(ctx context.Context, cabinID string, since time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"cabinId": cabinID,
		"$or": bson.A{
			bson.M{"startDate": bson.M{"$gte": since}},
			bson.M{"status": models.StatusCheckedIn},
		},
	}
	cur, err := s.BookingsCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *MongoStore) Booking(ctx context.Context, id string) (models.Booking, error) {
	var b models.Booking
	err := s.BookingsCollection.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	return b, notFound(err)
}

// GuestBookings joins the cabin name and image with a single $lookup stage.
func (s *MongoStore) GuestBookings(ctx context.Context, guestID string) ([]models.GuestBooking, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"guestId": guestID}}},
		{{Key: "$sort", Value: bson.D{{Key: "startDate", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         CabinsTable,
			"localField":   "cabinId",
			"foreignField": "id",
			"as":           "cabinDocs",
		}}},
		{{Key: "$project", Value: bson.M{
			"id":         1,
			"created_at": 1,
			"startDate":  1,
			"endDate":    1,
			"numNights":  1,
			"numGuests":  1,
			"totalPrice": 1,
			"guestId":    1,
			"cabinId":    1,
			"cabins": bson.M{
				"name":  bson.M{"$arrayElemAt": bson.A{"$cabinDocs.name", 0}},
				"image": bson.M{"$arrayElemAt": bson.A{"$cabinDocs.image", 0}},
			},
		}}},
	}

	cur, err := s.BookingsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bookings := []models.GuestBooking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *MongoStore) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	if _, err := s.BookingsCollection.InsertOne(ctx, b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (s *MongoStore) UpdateGuestBooking(ctx context.Context, bookingID, guestID string, u models.BookingUpdate) (bool, error) {
	res, err := s.BookingsCollection.UpdateOne(ctx,
		bson.M{"id": bookingID, "guestId": guestID},
		bson.M{"$set": bson.M{"numGuests": u.NumGuests, "observations": u.Observations}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *MongoStore) DeleteGuestBooking(ctx context.Context, bookingID, guestID string) (bool, error) {
	res, err := s.BookingsCollection.DeleteOne(ctx, bson.M{"id": bookingID, "guestId": guestID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) CreateContactMessage(ctx context.Context, m models.ContactMessage) error {
	_, err := s.ContactCollection.InsertOne(ctx, m)
	return err
}
