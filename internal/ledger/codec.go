package ledger

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// json matches encoding/json output exactly, so blobs stay readable by any
// JSON consumer.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// encodeDocument serializes the ledger. Absent loan fields are written as
// null; no key is ever omitted.
func encodeDocument(doc types.Document) ([]byte, error) {
	return json.Marshal(doc)
}

// decodeDocument parses a stored ledger as-is.
func decodeDocument(data []byte) (types.Document, error) {
	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Document{}, err
	}
	return doc, nil
}
