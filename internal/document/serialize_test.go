//go:build unit

package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSerializeDocument(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		documentId := primitive.NewObjectID()
		createdAt := time.Date(2023, time.August, 1, 12, 30, 0, 0, time.UTC)

		serializedDocument := SerializeDocument(bson.M{
			IdentifierField: documentId,
			"name":          "alice",
			"age":           int64(25),
			CreatedAtField:  primitive.NewDateTimeFromTime(createdAt),
		})

		assert.Equal(t, documentId.Hex(), serializedDocument[IdentifierField])
		assert.Equal(t, "alice", serializedDocument["name"])
		assert.Equal(t, int64(25), serializedDocument["age"])
		assert.Equal(t, "2023-08-01T12:30:00Z", serializedDocument[CreatedAtField])
	})

	t.Run("nested documents and arrays are converted recursively", func(t *testing.T) {
		nestedId := primitive.NewObjectID()

		serializedDocument := SerializeDocument(bson.M{
			"owner": bson.M{
				IdentifierField: nestedId,
			},
			"tags": bson.A{"a", primitive.NewDateTimeFromTime(
				time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC),
			)},
		})

		owner, isOk := serializedDocument["owner"].(Document)
		assert.True(t, isOk)
		assert.Equal(t, nestedId.Hex(), owner[IdentifierField])

		tags, isOk := serializedDocument["tags"].([]interface{})
		assert.True(t, isOk)
		assert.Equal(t, "a", tags[0])
		assert.Equal(t, "2023-08-01T00:00:00Z", tags[1])
	})

	t.Run("when document is nil should return nil", func(t *testing.T) {
		assert.Nil(t, SerializeDocument(nil))
	})
}
