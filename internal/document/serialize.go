package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SerializeDocument converts a store-native document into its wire form:
// ObjectIDs become their canonical hex string, timestamps become RFC 3339
// strings, nested documents and arrays are converted recursively.
func SerializeDocument(rawDocument bson.M) Document {
	if rawDocument == nil {
		return nil
	}

	serializedDocument := make(Document, len(rawDocument))
	for fieldName, fieldValue := range rawDocument {
		serializedDocument[fieldName] = serializeValue(fieldValue)
	}

	return serializedDocument
}

func serializeValue(value interface{}) interface{} {
	switch typedValue := value.(type) {
	case primitive.ObjectID:
		return typedValue.Hex()
	case primitive.DateTime:
		return typedValue.Time().UTC().Format(time.RFC3339Nano)
	case time.Time:
		return typedValue.UTC().Format(time.RFC3339Nano)
	case bson.M:
		return SerializeDocument(typedValue)
	case map[string]interface{}:
		return SerializeDocument(typedValue)
	case bson.A:
		return serializeArray(typedValue)
	case []interface{}:
		return serializeArray(typedValue)
	default:
		return value
	}
}

func serializeArray(values []interface{}) []interface{} {
	serializedValues := make([]interface{}, len(values))
	for index, value := range values {
		serializedValues[index] = serializeValue(value)
	}

	return serializedValues
}
