package scheduleRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindease/database"
	"mindease/models"
)

// MongoScheduleRepo implements Repository using MongoDB.
type MongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a repository over the schedules collection.
func NewMongoScheduleRepo() Repository {
	return &MongoScheduleRepo{coll: database.DB().Collection("schedules")}
}

func (repo *MongoScheduleRepo) GetByDate(ctx context.Context, therapistID, date string) (*models.DaySchedule, error) {
	var schedule models.DaySchedule
	filter := bson.M{"therapist_id": therapistID, "date": date}
	if err := repo.coll.FindOne(ctx, filter).Decode(&schedule); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching schedule for %s on %s: %w", therapistID, date, err)
	}
	return &schedule, nil
}

func (repo *MongoScheduleRepo) GetByDateRange(ctx context.Context, therapistID, start, end string) ([]models.DaySchedule, error) {
	filter := bson.M{
		"therapist_id": therapistID,
		"date":         bson.M{"$gte": start, "$lte": end},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching schedules for %s: %w", therapistID, err)
	}
	defer cursor.Close(ctx)

	var schedules []models.DaySchedule
	for cursor.Next(ctx) {
		var s models.DaySchedule
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("error decoding schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return schedules, nil
}

func (repo *MongoScheduleRepo) Upsert(ctx context.Context, schedule *models.DaySchedule) error {
	filter := bson.M{"therapist_id": schedule.TherapistID, "date": schedule.Date}
	opts := options.Replace().SetUpsert(true)
	if _, err := repo.coll.ReplaceOne(ctx, filter, schedule, opts); err != nil {
		return fmt.Errorf("error upserting schedule for %s on %s: %w", schedule.TherapistID, schedule.Date, err)
	}
	return nil
}

// BulkReplaceWindow sends the whole generation window as one unordered bulk
// write. Replacing a document with identical content reports modified 0, so
// an unchanged regeneration run naturally counts as a no-op.
func (repo *MongoScheduleRepo) BulkReplaceWindow(ctx context.Context, therapistID string, upserts []models.DaySchedule, deletes []string) (int64, int64, error) {
	if len(upserts) == 0 && len(deletes) == 0 {
		return 0, 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(upserts)+len(deletes))
	for i := range upserts {
		s := upserts[i]
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"therapist_id": therapistID, "date": s.Date}).
			SetReplacement(s).
			SetUpsert(true))
	}
	for _, date := range deletes {
		writes = append(writes, mongo.NewDeleteOneModel().
			SetFilter(bson.M{"therapist_id": therapistID, "date": date}))
	}

	res, err := repo.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, 0, fmt.Errorf("error bulk-writing schedule window for %s: %w", therapistID, err)
	}
	return res.UpsertedCount, res.ModifiedCount, nil
}
