package document

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"generic-api/pkg/cerror"
)

// Repository exposes the collection-level primitives of the document store.
// Collections are addressed by name at call time; the store creates them
// lazily on first insert.
type Repository interface {
	Find(ctx context.Context, entity string, filter bson.M) ([]bson.M, error)
	FindOne(ctx context.Context, entity string, filter bson.M) (bson.M, error)
	InsertOne(ctx context.Context, entity string, document bson.M) (primitive.ObjectID, error)
	UpdateOne(ctx context.Context, entity string, documentId primitive.ObjectID, fields bson.M) error
	DeleteOne(ctx context.Context, entity string, documentId primitive.ObjectID) error
}

type repository struct {
	database *mongo.Database
}

func NewRepository(database *mongo.Database) Repository {
	return &repository{
		database: database,
	}
}

func (r *repository) Find(ctx context.Context, entity string, filter bson.M) ([]bson.M, error) {
	cursor, err := r.database.Collection(entity).Find(ctx, filter)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while find documents",
			zap.Error(err),
		)
	}

	documents := make([]bson.M, 0)
	err = cursor.All(ctx, &documents)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while decode documents",
			zap.Error(err),
		)
	}

	return documents, nil
}

func (r *repository) FindOne(ctx context.Context, entity string, filter bson.M) (bson.M, error) {
	var document bson.M
	err := r.database.Collection(entity).FindOne(ctx, filter).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, cerror.
				NewError(fiber.StatusNotFound, "document not found").
				SetCode(cerror.CodeNotFound).
				SetSeverity(zapcore.WarnLevel)
		}

		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while find document",
			zap.Error(err),
		)
	}

	return document, nil
}

func (r *repository) InsertOne(
	ctx context.Context,
	entity string,
	document bson.M,
) (primitive.ObjectID, error) {
	result, err := r.database.Collection(entity).InsertOne(ctx, document)
	if err != nil {
		return primitive.NilObjectID, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while insert document",
			zap.Error(err),
		)
	}

	documentId, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while type casting for document id",
		)
	}

	return documentId, nil
}

func (r *repository) UpdateOne(
	ctx context.Context,
	entity string,
	documentId primitive.ObjectID,
	fields bson.M,
) error {
	result, err := r.database.Collection(entity).UpdateOne(
		ctx,
		bson.M{IdentifierField: documentId},
		bson.M{"$set": fields},
	)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while update document",
			zap.Error(err),
		)
	}

	if result.MatchedCount == 0 {
		return cerror.
			NewError(fiber.StatusNotFound, "document not found").
			SetCode(cerror.CodeNotFound).
			SetSeverity(zapcore.WarnLevel)
	}

	return nil
}

func (r *repository) DeleteOne(
	ctx context.Context,
	entity string,
	documentId primitive.ObjectID,
) error {
	result, err := r.database.Collection(entity).DeleteOne(
		ctx,
		bson.M{IdentifierField: documentId},
	)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while delete document",
			zap.Error(err),
		)
	}

	if result.DeletedCount == 0 {
		return cerror.
			NewError(fiber.StatusNotFound, "document not found").
			SetCode(cerror.CodeNotFound).
			SetSeverity(zapcore.WarnLevel)
	}

	return nil
}
