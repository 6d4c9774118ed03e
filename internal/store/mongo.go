package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ar1012/weather-monitor/internal/weather"
)

// ErrNotFound is returned when no stored data matches a query.
var ErrNotFound = errors.New("no weather data for city")

const (
	readingsCollection   = "weathers"
	thresholdsCollection = "thresholds"
)

// MongoStore persists readings append-only and thresholds keyed by city.
type MongoStore struct {
	readings   *mongo.Collection
	thresholds *mongo.Collection
}

// NewMongoStore creates a MongoStore on top of an existing database handle.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		readings:   db.Collection(readingsCollection),
		thresholds: db.Collection(thresholdsCollection),
	}
}

// SaveReading appends one reading. Readings are never updated or deleted.
func (s *MongoStore) SaveReading(ctx context.Context, r weather.Reading) error {
	if _, err := s.readings.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// RecentReadings returns up to limit readings for a city, newest first.
func (s *MongoStore) RecentReadings(ctx context.Context, city string, limit int) ([]weather.Reading, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.readings.Find(ctx, bson.M{"city": city}, opts)
	if err != nil {
		return nil, fmt.Errorf("find readings: %w", err)
	}

	var readings []weather.Reading
	if err := cursor.All(ctx, &readings); err != nil {
		return nil, fmt.Errorf("decode readings: %w", err)
	}
	if len(readings) == 0 {
		return nil, ErrNotFound
	}
	return readings, nil
}

// DailyStats runs the grouped aggregation for a city's readings since the
// given instant: min/max/avg per numeric field plus the pushed condition list.
func (s *MongoStore) DailyStats(ctx context.Context, city string, since time.Time) (weather.DailyStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "city", Value: city},
			{Key: "timestamp", Value: bson.D{{Key: "$gte", Value: since}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avgTemp", Value: bson.D{{Key: "$avg", Value: "$temp"}}},
			{Key: "minTemp", Value: bson.D{{Key: "$min", Value: "$temp"}}},
			{Key: "maxTemp", Value: bson.D{{Key: "$max", Value: "$temp"}}},
			{Key: "minHumidity", Value: bson.D{{Key: "$min", Value: "$humidity"}}},
			{Key: "maxHumidity", Value: bson.D{{Key: "$max", Value: "$humidity"}}},
			{Key: "avgHumidity", Value: bson.D{{Key: "$avg", Value: "$humidity"}}},
			{Key: "avgWindSpeed", Value: bson.D{{Key: "$avg", Value: "$wind_speed"}}},
			{Key: "maxWindSpeed", Value: bson.D{{Key: "$max", Value: "$wind_speed"}}},
			{Key: "conditions", Value: bson.D{{Key: "$push", Value: "$condition"}}},
		}}},
	}

	cursor, err := s.readings.Aggregate(ctx, pipeline)
	if err != nil {
		return weather.DailyStats{}, fmt.Errorf("aggregate readings: %w", err)
	}

	var results []weather.DailyStats
	if err := cursor.All(ctx, &results); err != nil {
		return weather.DailyStats{}, fmt.Errorf("decode aggregation: %w", err)
	}
	if len(results) == 0 {
		return weather.DailyStats{}, ErrNotFound
	}
	return results[0], nil
}

// Threshold returns the stored threshold for a city, or (nil, nil) when the
// city has none configured.
func (s *MongoStore) Threshold(ctx context.Context, city string) (*weather.Threshold, error) {
	var th weather.Threshold
	err := s.thresholds.FindOne(ctx, bson.M{"city": city}).Decode(&th)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find threshold: %w", err)
	}
	return &th, nil
}

// UpsertThreshold creates or replaces the threshold for a city, always
// resetting the alert flag.
func (s *MongoStore) UpsertThreshold(ctx context.Context, city string, tempThreshold float64) error {
	update := bson.M{"$set": bson.M{
		"tempThreshold":  tempThreshold,
		"alertTriggered": false,
	}}

	_, err := s.thresholds.UpdateOne(ctx, bson.M{"city": city}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert threshold: %w", err)
	}
	return nil
}

// SetAlert updates only the alert flag for a city's threshold.
func (s *MongoStore) SetAlert(ctx context.Context, city string, triggered bool) error {
	update := bson.M{"$set": bson.M{"alertTriggered": triggered}}

	_, err := s.thresholds.UpdateOne(ctx, bson.M{"city": city}, update)
	if err != nil {
		return fmt.Errorf("update alert flag: %w", err)
	}
	return nil
}
