package document

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"generic-api/pkg/cerror"
)

// Service is the entity-agnostic accessor: it maps collection names, raw
// identifiers and arbitrary payloads onto document-store operations without
// compile-time knowledge of any collection's shape.
type Service interface {
	List(ctx context.Context, entity string) ([]Document, error)
	GetById(ctx context.Context, entity, rawDocumentId string) (Document, error)
	Create(ctx context.Context, entity string, payload map[string]interface{}) (Document, error)
	Update(ctx context.Context, entity, rawDocumentId string, patch map[string]interface{}) (Document, error)
	Delete(ctx context.Context, entity, rawDocumentId string) (Document, error)
	Filter(ctx context.Context, entity string, queryParams map[string]string) ([]Document, error)
}

type service struct {
	documentRepository Repository
}

func NewService(documentRepository Repository) Service {
	return &service{
		documentRepository: documentRepository,
	}
}

func (s *service) List(ctx context.Context, entity string) ([]Document, error) {
	rawDocuments, err := s.documentRepository.Find(ctx, entity, bson.M{})
	if err != nil {
		return nil, err
	}

	return serializeDocuments(rawDocuments), nil
}

func (s *service) GetById(ctx context.Context, entity, rawDocumentId string) (Document, error) {
	documentId, err := ParseDocumentId(rawDocumentId)
	if err != nil {
		return nil, err
	}

	rawDocument, err := s.documentRepository.FindOne(ctx, entity, bson.M{IdentifierField: documentId})
	if err != nil {
		return nil, err
	}

	return SerializeDocument(rawDocument), nil
}

func (s *service) Create(
	ctx context.Context,
	entity string,
	payload map[string]interface{},
) (Document, error) {
	rawDocument := bson.M{}
	for fieldName, fieldValue := range payload {
		rawDocument[fieldName] = fieldValue
	}

	// the store assigns the identifier, never the client
	delete(rawDocument, IdentifierField)

	now := time.Now().UTC()
	if _, isSupplied := rawDocument[CreatedAtField]; !isSupplied {
		rawDocument[CreatedAtField] = now
	}
	if _, isSupplied := rawDocument[UpdatedAtField]; !isSupplied {
		rawDocument[UpdatedAtField] = now
	}

	documentId, err := s.documentRepository.InsertOne(ctx, entity, rawDocument)
	if err != nil {
		return nil, err
	}

	storedDocument, err := s.documentRepository.FindOne(ctx, entity, bson.M{IdentifierField: documentId})
	if err != nil {
		return nil, err
	}

	return SerializeDocument(storedDocument), nil
}

func (s *service) Update(
	ctx context.Context,
	entity, rawDocumentId string,
	patch map[string]interface{},
) (Document, error) {
	documentId, err := ParseDocumentId(rawDocumentId)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	for fieldName, fieldValue := range patch {
		fields[fieldName] = fieldValue
	}

	// identifiers are immutable and creation timestamps are store-managed
	delete(fields, IdentifierField)
	delete(fields, CreatedAtField)
	fields[UpdatedAtField] = time.Now().UTC()

	err = s.documentRepository.UpdateOne(ctx, entity, documentId, fields)
	if err != nil {
		return nil, err
	}

	updatedDocument, err := s.documentRepository.FindOne(ctx, entity, bson.M{IdentifierField: documentId})
	if err != nil {
		return nil, err
	}

	return SerializeDocument(updatedDocument), nil
}

func (s *service) Delete(ctx context.Context, entity, rawDocumentId string) (Document, error) {
	documentId, err := ParseDocumentId(rawDocumentId)
	if err != nil {
		return nil, err
	}

	rawDocument, err := s.documentRepository.FindOne(ctx, entity, bson.M{IdentifierField: documentId})
	if err != nil {
		return nil, err
	}

	err = s.documentRepository.DeleteOne(ctx, entity, documentId)
	if err != nil {
		return nil, err
	}

	return SerializeDocument(rawDocument), nil
}

func (s *service) Filter(
	ctx context.Context,
	entity string,
	queryParams map[string]string,
) ([]Document, error) {
	rawDocuments, err := s.documentRepository.Find(ctx, entity, BuildFilter(queryParams))
	if err != nil {
		return nil, err
	}

	return serializeDocuments(rawDocuments), nil
}

// ParseDocumentId parses the canonical string form of an identifier into its
// store-native format. A malformed identifier is a client error, distinct
// from "not found".
func ParseDocumentId(rawDocumentId string) (primitive.ObjectID, error) {
	documentId, err := primitive.ObjectIDFromHex(rawDocumentId)
	if err != nil {
		return primitive.NilObjectID, cerror.
			NewError(
				fiber.StatusBadRequest,
				"malformed document identifier",
				zap.String("documentId", rawDocumentId),
			).
			SetCode(cerror.CodeMalformedIdentifier).
			SetPublicMessage("malformed document identifier").
			SetSeverity(zapcore.WarnLevel)
	}

	return documentId, nil
}

func serializeDocuments(rawDocuments []bson.M) []Document {
	documents := make([]Document, len(rawDocuments))
	for index, rawDocument := range rawDocuments {
		documents[index] = SerializeDocument(rawDocument)
	}

	return documents
}
