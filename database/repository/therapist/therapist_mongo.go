package therapistRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mindease/database"
	"mindease/models"
)

// MongoTherapistRepo implements Repository using MongoDB.
type MongoTherapistRepo struct {
	coll *mongo.Collection
}

// NewMongoTherapistRepo constructs a repository over the therapists collection.
func NewMongoTherapistRepo() Repository {
	return &MongoTherapistRepo{coll: database.DB().Collection("therapists")}
}

func (repo *MongoTherapistRepo) Create(ctx context.Context, therapist *models.Therapist) error {
	now := time.Now()
	therapist.CreatedAt = now
	therapist.UpdatedAt = now
	if _, err := repo.coll.InsertOne(ctx, therapist); err != nil {
		return fmt.Errorf("error creating therapist: %w", err)
	}
	return nil
}

func (repo *MongoTherapistRepo) GetByID(ctx context.Context, id string) (*models.Therapist, error) {
	var therapist models.Therapist
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&therapist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching therapist %s: %w", id, err)
	}
	return &therapist, nil
}

func (repo *MongoTherapistRepo) ListIDs(ctx context.Context) ([]string, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing therapists: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding therapist: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return ids, nil
}

func (repo *MongoTherapistRepo) UpdateConsultingHours(ctx context.Context, id string, hours []models.ConsultingHour) error {
	update := bson.M{"$set": bson.M{
		"consultingHours": hours,
		"updated_at":      time.Now(),
	}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating consulting hours for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
