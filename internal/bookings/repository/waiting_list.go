package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "courtops/internal/bookings/errors"
	"courtops/pkg/config"
	"courtops/pkg/model"
)

const (
	WaitingListCollectionName = "Waiting_list"
)

type WaitingListRepository interface {
	Create(ctx context.Context, entry *model.WaitingListEntry) error
	FindByID(ctx context.Context, id string) (*model.WaitingListEntry, error)
	FindByClubAndDate(ctx context.Context, clubID, date string, statuses []string) ([]*model.WaitingListEntry, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

type mongoWaitingListRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoWaitingListRepository(cfg *config.Config) WaitingListRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoWaitingListRepository{
		cfg:        cfg,
		collection: db.Collection(WaitingListCollectionName),
	}
}

func (r *mongoWaitingListRepository) Create(ctx context.Context, entry *model.WaitingListEntry) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	entry.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to create waiting list entry: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

func (r *mongoWaitingListRepository) FindByID(ctx context.Context, id string) (*model.WaitingListEntry, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var entry model.WaitingListEntry
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to find waiting list entry: %w", err)
	}

	return &entry, nil
}

func (r *mongoWaitingListRepository) FindByClubAndDate(ctx context.Context, clubID, date string, statuses []string) ([]*model.WaitingListEntry, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"club_id": clubID,
		"date":    date,
	}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find waiting list entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*model.WaitingListEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode waiting list entries: %w", err)
	}

	return entries, nil
}

func (r *mongoWaitingListRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update waiting list entry: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrEntryNotFound
	}

	return nil
}
