// Copyright 2025 The Aigent Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/dahyuniiiiii/Aigent/core"
)

var vectorMUS = ord.NewSliceSer[float32](raw.Float32)

// documentMUS is the MUS serializer for core.Document.
// Timestamps are stored as Unix microseconds.
type documentMUS struct{}

// DocumentMUS serializes core.Document values for the badger backend.
var DocumentMUS = documentMUS{}

var _ mus.Serializer[core.Document] = DocumentMUS

func (documentMUS) Marshal(d core.Document, bs []byte) (n int) {
	n = ord.String.Marshal(d.ID, bs)
	n += ord.String.Marshal(d.Date, bs[n:])
	n += ord.String.Marshal(d.Text, bs[n:])
	n += vectorMUS.Marshal(d.Vector, bs[n:])
	n += varint.Int64.Marshal(d.InsertedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(d.UpdatedAt.UnixMicro(), bs[n:])
	return
}

func (documentMUS) Unmarshal(bs []byte) (d core.Document, n int, err error) {
	var n1 int
	if d.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if d.Date, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	d.InsertedAt = time.UnixMicro(micros).UTC()
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	d.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (documentMUS) Size(d core.Document) (size int) {
	size = ord.String.Size(d.ID)
	size += ord.String.Size(d.Date)
	size += ord.String.Size(d.Text)
	size += vectorMUS.Size(d.Vector)
	size += varint.Int64.Size(d.InsertedAt.UnixMicro())
	size += varint.Int64.Size(d.UpdatedAt.UnixMicro())
	return
}

func (s documentMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, DocumentMUS.Size(*doc))
	DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}

// MarshalDocumentID serializes a document ID to bytes for index values.
func MarshalDocumentID(id string) []byte {
	buf := make([]byte, ord.String.Size(id))
	ord.String.Marshal(id, buf)
	return buf
}

// UnmarshalDocumentID deserializes a document ID from bytes.
func UnmarshalDocumentID(data []byte) (string, error) {
	id, _, err := ord.String.Unmarshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}
