package database

import (
	"context"
	"fmt"
	"time"

	"nba-props-go/logging"
	"nba-props-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPredictionRepository persists value-bet predictions for accuracy
// tracking. A record is keyed by (date, playerId, statType); the
// prediction fields are written once with $setOnInsert so recomputing
// with a different window or line snapshot never rewrites history.
type MongoPredictionRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoPredictionRepository(db *MongoDB) *MongoPredictionRepository {
	collection := db.GetCollection("predictions")
	logger := logging.WithPrefix("mongo_prediction_repo")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}, {Key: "playerId", Value: 1}, {Key: "statType", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		logger.Errorf("Failed to create index on predictions collection: %v", err)
	}

	return &MongoPredictionRepository{
		collection: collection,
		logger:     logger,
	}
}

// SavePredictions inserts new prediction records. Records that already
// exist for (date, player, stat) are left untouched.
func (r *MongoPredictionRepository) SavePredictions(ctx context.Context, records []models.PredictionRecord) error {
	if len(records) == 0 {
		return nil
	}

	var operations []mongo.WriteModel
	for i := range records {
		rec := &records[i]
		filter := bson.M{"date": rec.Date, "playerId": rec.PlayerID, "statType": rec.StatType}

		update := bson.M{
			"$setOnInsert": bson.M{
				"date":           rec.Date,
				"playerId":       rec.PlayerID,
				"playerName":     rec.PlayerName,
				"statType":       rec.StatType,
				"predictedValue": rec.Predicted,
				"confidence":     rec.Confidence,
				"bettingLine":    rec.Line,
				"edge":           rec.Edge,
				"side":           rec.Side,
				"createdAt":      rec.CreatedAt,
			},
		}

		operations = append(operations, mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(update).
			SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)
	result, err := r.collection.BulkWrite(ctx, operations, opts)
	if err != nil {
		return fmt.Errorf("bulk upsert of predictions failed: %w", err)
	}

	r.logger.Infof("Saved predictions: %d new, %d already recorded",
		result.UpsertedCount, int64(len(records))-result.UpsertedCount)
	return nil
}

// GetUnresolved returns records whose game date has passed but whose
// outcome has not been recorded yet.
func (r *MongoPredictionRepository) GetUnresolved(ctx context.Context, before string) ([]models.PredictionRecord, error) {
	filter := bson.M{
		"date":        bson.M{"$lt": before},
		"actualValue": bson.M{"$exists": false},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find unresolved predictions: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.PredictionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode prediction records: %w", err)
	}

	return records, nil
}

// MarkResolved records the realized stat value and correctness for one
// prediction. Prediction fields are never touched.
func (r *MongoPredictionRepository) MarkResolved(ctx context.Context, rec *models.PredictionRecord) error {
	if !rec.Resolved() {
		return fmt.Errorf("prediction %s/%s/%s has no outcome to record", rec.Date, rec.PlayerID, rec.StatType)
	}

	filter := bson.M{"date": rec.Date, "playerId": rec.PlayerID, "statType": rec.StatType}
	update := bson.M{
		"$set": bson.M{
			"actualValue": rec.Actual,
			"wasCorrect":  rec.Correct,
			"resolvedAt":  rec.ResolvedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to resolve prediction %s/%s/%s: %w", rec.Date, rec.PlayerID, rec.StatType, err)
	}

	return nil
}

// GetResolvedSince returns all resolved records with a game date on or
// after the cutoff (YYYY-MM-DD).
func (r *MongoPredictionRepository) GetResolvedSince(ctx context.Context, cutoff string) ([]models.PredictionRecord, error) {
	filter := bson.M{
		"date":        bson.M{"$gte": cutoff},
		"actualValue": bson.M{"$exists": true},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find resolved predictions: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.PredictionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode prediction records: %w", err)
	}

	return records, nil
}
