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

	clubserrors "courtops/internal/clubs/errors"
	"courtops/pkg/config"
	mongotx "courtops/pkg/db/mongo"
	"courtops/pkg/model"
)

const (
	ClubCollectionName = "Clubs"
)

type ClubRepository interface {
	Create(ctx context.Context, club *model.ClubScheduleConfig) error
	FindByID(ctx context.Context, id string) (*model.ClubScheduleConfig, error)
	FindBySlug(ctx context.Context, slug string) (*model.ClubScheduleConfig, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.ClubScheduleConfig, error)
	Update(ctx context.Context, id string, club *model.ClubScheduleConfig) (*mongo.UpdateResult, error)
	Count(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoClubRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoClubRepository(cfg *config.Config) ClubRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoClubRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(ClubCollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoClubRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create club slug index: %w", err)
	}
	return nil
}

func (r *mongoClubRepository) Create(ctx context.Context, club *model.ClubScheduleConfig) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	club.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, club)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return clubserrors.ErrSlugTaken
		}
		return fmt.Errorf("failed to create club: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		club.ID = oid.Hex()
	}
	return nil
}

func (r *mongoClubRepository) FindByID(ctx context.Context, id string) (*model.ClubScheduleConfig, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", clubserrors.ErrInvalidID, id)
	}

	var club model.ClubScheduleConfig
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&club)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, clubserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find club: %w", err)
	}

	return &club, nil
}

func (r *mongoClubRepository) FindBySlug(ctx context.Context, slug string) (*model.ClubScheduleConfig, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var club model.ClubScheduleConfig
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&club)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, clubserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find club by slug: %w", err)
	}

	return &club, nil
}

func (r *mongoClubRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.ClubScheduleConfig, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find clubs: %w", err)
	}
	defer cursor.Close(ctx)

	var clubs []*model.ClubScheduleConfig
	if err = cursor.All(ctx, &clubs); err != nil {
		return nil, fmt.Errorf("failed to decode clubs: %w", err)
	}

	return clubs, nil
}

func (r *mongoClubRepository) Update(ctx context.Context, id string, club *model.ClubScheduleConfig) (*mongo.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", clubserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":              club.Name,
			"open_time":         club.OpenTime,
			"close_time":        club.CloseTime,
			"slot_duration_min": club.SlotDurationMin,
			"time_zone":         club.TimeZone,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update club: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, clubserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoClubRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count clubs: %w", err)
	}

	return count, nil
}

func (r *mongoClubRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
