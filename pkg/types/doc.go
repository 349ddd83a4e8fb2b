// Package types defines the Library and BlobStore interfaces, the ledger
// entity types (Book, Member, Document), operation results, and the standard
// error values for the shelf lending ledger.
package types
