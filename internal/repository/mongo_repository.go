package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomlog/internal/apperr"
	"roomlog/internal/models"
	"roomlog/internal/storage"
)

const (
	usersCollection = "users"
	logsCollection  = "logs"
)

// MongoUserRepository 以 MongoDB 文件保存用戶
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *storage.MongoDB) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes 建立 userId 與 secretKey 的唯一索引
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "secretKey", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt, user.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return translateMongoError(err)
	}
	return nil
}

func (r *MongoUserRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// MongoLogRepository 以 MongoDB 文件保存進出紀錄
type MongoLogRepository struct {
	coll *mongo.Collection
}

func NewMongoLogRepository(db *storage.MongoDB) *MongoLogRepository {
	return &MongoLogRepository{coll: db.Collection(logsCollection)}
}

// EnsureIndexes 建立依用戶查詢用的索引
func (r *MongoLogRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	return err
}

func (r *MongoLogRepository) Create(ctx context.Context, entry *models.LogEntry) error {
	now := time.Now().UTC()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt, entry.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, entry)
	return translateMongoError(err)
}

func (r *MongoLogRepository) FindAll(ctx context.Context) ([]models.LogEntry, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoLogRepository) FindByUserID(ctx context.Context, userID string) ([]models.LogEntry, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *MongoLogRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoLogRepository) find(ctx context.Context, filter bson.M) ([]models.LogEntry, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}

	entries := []models.LogEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func translateMongoError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return apperr.DuplicateIdentity(err)
	}
	return err
}
