package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindease/database"
	"mindease/models"
)

// MongoSessionRepo implements Repository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a repository over the sessions collection.
func NewMongoSessionRepo() Repository {
	return &MongoSessionRepo{coll: database.DB().Collection("sessions")}
}

func (repo *MongoSessionRepo) Insert(ctx context.Context, session *models.Session) error {
	if _, err := repo.coll.InsertOne(ctx, session); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

func (repo *MongoSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching session %s: %w", id, err)
	}
	return &session, nil
}

func (repo *MongoSessionRepo) UpdateStatus(ctx context.Context, id string, from []string, to string, active bool) (*models.Session, error) {
	filter := bson.M{"id": id, "status": bson.M{"$in": from}}
	update := bson.M{"$set": bson.M{
		"status":     to,
		"active":     active,
		"updated_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var session models.Session
	if err := repo.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating session %s: %w", id, err)
	}
	return &session, nil
}

func (repo *MongoSessionRepo) ListActiveInRange(ctx context.Context, therapistID, start, end string) ([]models.Session, error) {
	filter := bson.M{
		"therapist_id": therapistID,
		"active":       true,
		"date":         bson.M{"$gte": start, "$lte": end},
	}
	return repo.list(ctx, filter)
}

func (repo *MongoSessionRepo) ListByUser(ctx context.Context, userID string) ([]models.Session, error) {
	return repo.list(ctx, bson.M{"user_id": userID})
}

func (repo *MongoSessionRepo) ListByTherapistDate(ctx context.Context, therapistID, date string) ([]models.Session, error) {
	return repo.list(ctx, bson.M{"therapist_id": therapistID, "date": date})
}

func (repo *MongoSessionRepo) list(ctx context.Context, filter bson.M) ([]models.Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	for cursor.Next(ctx) {
		var s models.Session
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("error decoding session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return sessions, nil
}
