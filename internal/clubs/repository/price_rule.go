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
	"courtops/pkg/model"
)

const (
	PriceRuleCollectionName = "Price_rules"
)

type PriceRuleRepository interface {
	Create(ctx context.Context, rule *model.PriceRule) error
	FindByID(ctx context.Context, id string) (*model.PriceRule, error)
	FindByClub(ctx context.Context, clubID string) ([]*model.PriceRule, error)
	Update(ctx context.Context, id string, rule *model.PriceRule) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	CountByClub(ctx context.Context, clubID string) (int64, error)
}

type mongoPriceRuleRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPriceRuleRepository(cfg *config.Config) PriceRuleRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPriceRuleRepository{
		cfg:        cfg,
		collection: db.Collection(PriceRuleCollectionName),
	}
}

func (r *mongoPriceRuleRepository) Create(ctx context.Context, rule *model.PriceRule) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	rule.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, rule)
	if err != nil {
		return fmt.Errorf("failed to create price rule: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		rule.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPriceRuleRepository) FindByID(ctx context.Context, id string) (*model.PriceRule, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", clubserrors.ErrInvalidID, id)
	}

	var rule model.PriceRule
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&rule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, clubserrors.ErrPriceRuleNotFound
		}
		return nil, fmt.Errorf("failed to find price rule: %w", err)
	}

	return &rule, nil
}

// FindByClub returns all rules for a club ordered by creation time, the
// order the resolver uses for its final tiebreak.
func (r *mongoPriceRuleRepository) FindByClub(ctx context.Context, clubID string) ([]*model.PriceRule, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"club_id": clubID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find price rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []*model.PriceRule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode price rules: %w", err)
	}

	return rules, nil
}

func (r *mongoPriceRuleRepository) Update(ctx context.Context, id string, rule *model.PriceRule) (*mongo.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", clubserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":                    rule.Name,
			"days_of_week":            rule.DaysOfWeek,
			"start_time":              rule.StartTime,
			"end_time":                rule.EndTime,
			"price":                   rule.Price,
			"priority":                rule.Priority,
			"member_discount_percent": rule.MemberDiscountPercent,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update price rule: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, clubserrors.ErrPriceRuleNotFound
	}

	return result, nil
}

func (r *mongoPriceRuleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", clubserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete price rule: %w", err)
	}

	if result.DeletedCount == 0 {
		return clubserrors.ErrPriceRuleNotFound
	}

	return nil
}

func (r *mongoPriceRuleRepository) CountByClub(ctx context.Context, clubID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"club_id": clubID})
	if err != nil {
		return 0, fmt.Errorf("failed to count price rules: %w", err)
	}

	return count, nil
}
