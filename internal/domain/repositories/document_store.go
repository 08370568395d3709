package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// Document store errors
var (
	ErrReadDegraded      = errors.New("collection could not be read")
	ErrWriteFailed       = errors.New("collection write failed")
	ErrInvalidCollection = errors.New("invalid collection name")
	ErrInvalidRecord     = errors.New("record must be a JSON object")
	ErrNotFound          = errors.New("document not found")
)

// Well-known collections
const (
	CollectionProjects  = "projects"
	CollectionTasks     = "tasks"
	CollectionSummaries = "summaries"
)

var collectionName = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// DocumentStore persists named collections of JSON records
type DocumentStore interface {
	// List returns the whole collection in insertion order. A missing or
	// unreadable collection yields an empty slice, never an error.
	List(ctx context.Context, collection string) ([]Document, error)

	// Append assigns a new id to record, persists the whole collection and
	// returns the stored document. Appends to one collection are serialized.
	Append(ctx context.Context, collection string, record any) (Document, error)
}

// Document is a stored record: a server-assigned id plus the record's fields
type Document struct {
	ID     string
	Fields map[string]json.RawMessage
}

// ValidateCollection checks that name is safe to use as a collection key
func ValidateCollection(name string) error {
	if !collectionName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, name)
	}
	return nil
}

// NewDocument combines id with the fields of record, which must encode to a
// JSON object. An "id" field inside record is replaced.
func NewDocument(id string, record any) (Document, error) {
	var raw []byte
	switch r := record.(type) {
	case json.RawMessage:
		raw = r
	case []byte:
		raw = r
	default:
		b, err := json.Marshal(record)
		if err != nil {
			return Document{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		raw = b
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return Document{}, ErrInvalidRecord
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	delete(fields, "id")
	return Document{ID: id, Fields: fields}, nil
}

// Decode unmarshals the full document, id included, into v
func (d Document) Decode(v any) error {
	b, err := d.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// MarshalJSON writes id first followed by the remaining fields in key order
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"id":`)
	id, err := json.Marshal(d.ID)
	if err != nil {
		return nil, err
	}
	buf.Write(id)

	keys := make([]string, 0, len(d.Fields))
	for k := range d.Fields {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		if v := d.Fields[k]; len(v) > 0 {
			buf.Write(v)
		} else {
			buf.WriteString("null")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Document) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return ErrInvalidRecord
	}
	var id string
	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &id); err != nil {
			return fmt.Errorf("document id: %w", err)
		}
		delete(fields, "id")
	}
	d.ID = id
	d.Fields = fields
	return nil
}
