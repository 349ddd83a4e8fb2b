package ledger

import (
	stdjson "encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestEncodeDocumentWritesEveryKey(t *testing.T) {
	data, err := encodeDocument(seedDocument())
	require.NoError(t, err)

	var raw struct {
		Books   []map[string]any `json:"books"`
		Members []map[string]any `json:"members"`
	}
	require.NoError(t, stdjson.Unmarshal(data, &raw))
	require.Len(t, raw.Books, 3)
	require.Len(t, raw.Members, 5)

	bookKeys := []string{"isbn", "title", "author", "year", "borrowedBy", "borrowDate", "dueDate"}
	for _, b := range raw.Books {
		for _, k := range bookKeys {
			assert.Contains(t, b, k)
		}
	}
	memberKeys := []string{"id", "name", "email", "phone", "registrationDate", "borrowedBooks"}
	for _, m := range raw.Members {
		for _, k := range memberKeys {
			assert.Contains(t, m, k)
		}
	}

	available := raw.Books[0]
	assert.Nil(t, available["borrowedBy"])
	assert.Nil(t, available["borrowDate"])
	assert.Nil(t, available["dueDate"])

	onLoan := raw.Books[1]
	assert.Equal(t, "MEM001", onLoan["borrowedBy"])
	assert.Equal(t, "2025-12-20", onLoan["borrowDate"])
	assert.Equal(t, "2026-01-03", onLoan["dueDate"])

	assert.Equal(t, []any{}, raw.Members[1]["borrowedBooks"], "empty loan list is [] not null")
}

func TestEncodeDocumentMatchesEncodingJSON(t *testing.T) {
	doc := seedDocument()
	got, err := encodeDocument(doc)
	require.NoError(t, err)
	want, err := stdjson.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.Document
		wantErr bool
	}{
		{
			name: "null loan fields",
			input: `{"books":[{"isbn":"1","title":"T","author":"A","year":1999,` +
				`"borrowedBy":null,"borrowDate":null,"dueDate":null}],"members":[]}`,
			want: types.Document{
				Books:   []types.Book{{ISBN: "1", Title: "T", Author: "A", Year: 1999}},
				Members: []types.Member{},
			},
		},
		{
			name: "open loan",
			input: `{"books":[{"isbn":"1","title":"T","author":"A","year":1999,` +
				`"borrowedBy":"MEM001","borrowDate":"2026-01-01","dueDate":"2026-01-15"}],` +
				`"members":[{"id":"MEM001","name":"N","email":"e@x.io","phone":"1",` +
				`"registrationDate":"2025-01-01","borrowedBooks":["1"]}]}`,
			want: func() types.Document {
				b := types.Book{ISBN: "1", Title: "T", Author: "A", Year: 1999}
				b.Lend("MEM001", "2026-01-01", "2026-01-15")
				return types.Document{
					Books: []types.Book{b},
					Members: []types.Member{{
						ID: "MEM001", Name: "N", Email: "e@x.io", Phone: "1",
						RegistrationDate: "2025-01-01", BorrowedBooks: []string{"1"},
					}},
				}
			}(),
		},
		{
			name:    "malformed",
			input:   `{"books":[`,
			wantErr: true,
		},
		{
			name:    "wrong shape",
			input:   `{"books":{"isbn":"1"}}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeDocument([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
