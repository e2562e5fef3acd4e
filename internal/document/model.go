package document

const (
	IdentifierField = "_id"
	CreatedAtField  = "created_at"
	UpdatedAtField  = "updated_at"
)

// Document is the wire form of a schema-less record: the identifier and any
// store-native timestamps are already serialized to their string form.
type Document map[string]interface{}

type deleteResponse struct {
	Message         string   `json:"message"`
	DeletedDocument Document `json:"deleted_document"`
}
