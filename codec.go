package stockroom

import (
	"encoding/json"
	"reflect"
	"slices"

	iter_util "github.com/TheBitDrifter/util/iter"
	"gopkg.in/yaml.v3"
)

// Serialization adapter. Entities serialize as a plain sequence of typed
// storage values and worlds as a sequence of entities, ordered by entity id.
// Deserialization rebuilds through the same Add paths used at runtime, which
// means predicate indices are never restored from data: they are runtime-only
// derived caches and must be re-registered after loading.

// TypedValue is the wire form of one storage: a registered type name plus the
// component value.
type TypedValue struct {
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

type jsonEncoding struct{}

func (jsonEncoding) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonEncoding) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type yamlEncoding struct{}

func (yamlEncoding) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlEncoding) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// JSON encodes documents with encoding/json.
var JSON Encoding = jsonEncoding{}

// YAML encodes documents with gopkg.in/yaml.v3.
var YAML Encoding = yamlEncoding{}

var _ StorageCodec[reflect.Type, Box] = &BoxCodec{}

// BoxCodec maps open-set storages to and from typed wire values. Every boxed
// component type must be registered under an explicit name before encoding or
// decoding it; an unregistered type is a codec error, since it cannot be
// reconstructed on the way back in.
type BoxCodec struct {
	names    map[reflect.Type]string
	decoders map[string]func(any, Encoding) (Box, error)
}

func newBoxCodec() *BoxCodec {
	return &BoxCodec{
		names:    make(map[reflect.Type]string),
		decoders: make(map[string]func(any, Encoding) (Box, error)),
	}
}

// RegisterBoxType registers T under the given wire name.
func RegisterBoxType[T any](c *BoxCodec, name string) {
	rtype := reflect.TypeFor[T]()
	c.names[rtype] = name
	c.decoders[name] = func(raw any, enc Encoding) (Box, error) {
		buf, err := enc.Marshal(raw)
		if err != nil {
			return Box{}, err
		}
		var value T
		if err := enc.Unmarshal(buf, &value); err != nil {
			return Box{}, err
		}
		return BoxOf(value), nil
	}
}

func (c *BoxCodec) Encode(b Box) (TypedValue, error) {
	name, ok := c.names[b.rtype]
	if !ok {
		return TypedValue{}, UnknownTypeError{Type: b.rtype.String()}
	}
	return TypedValue{
		Type:  name,
		Value: reflect.ValueOf(b.value).Elem().Interface(),
	}, nil
}

func (c *BoxCodec) Decode(tv TypedValue, enc Encoding) (Box, error) {
	decode, ok := c.decoders[tv.Type]
	if !ok {
		return Box{}, UnknownTypeError{Type: tv.Type}
	}
	return decode(tv.Value, enc)
}

var _ StorageCodec[uint32, Tagged] = &unionCodec{}

// Codec derives a closed-set storage codec from the schema. Wire names are
// the member type names recorded at registration; no further setup is needed.
func (s *UnionSchema) Codec() StorageCodec[uint32, Tagged] {
	return &unionCodec{schema: s}
}

type unionCodec struct {
	schema *UnionSchema
}

func (c *unionCodec) Encode(t Tagged) (TypedValue, error) {
	if int(t.id) >= c.schema.members.Len() {
		return TypedValue{}, UnknownTypeError{Type: t.String()}
	}
	info := c.schema.members.GetItem32(t.id)
	value, err := info.encode(t)
	if err != nil {
		return TypedValue{}, err
	}
	return TypedValue{Type: info.rtype.String(), Value: value}, nil
}

func (c *unionCodec) Decode(tv TypedValue, enc Encoding) (Tagged, error) {
	idx, ok := c.schema.members.GetIndex(tv.Type)
	if !ok {
		return Tagged{}, UnknownTypeError{Type: tv.Type}
	}
	return c.schema.members.GetItem(idx).decode(tv.Value, enc)
}

// MarshalEntity serializes an entity as a sequence of typed storage values.
func MarshalEntity[ID comparable, S Storage[ID]](e *Entity[ID, S], codec StorageCodec[ID, S], enc Encoding) ([]byte, error) {
	storages := iter_util.Collect(e.Storages())
	docs := make([]TypedValue, 0, len(storages))
	for _, s := range storages {
		tv, err := codec.Encode(s)
		if err != nil {
			return nil, err
		}
		docs = append(docs, tv)
	}
	return enc.Marshal(docs)
}

// UnmarshalEntity rebuilds an entity through Add from a serialized sequence.
func UnmarshalEntity[ID comparable, S Storage[ID]](data []byte, codec StorageCodec[ID, S], enc Encoding) (*Entity[ID, S], error) {
	var docs []TypedValue
	if err := enc.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	e := NewEntity[ID, S]()
	for _, tv := range docs {
		s, err := codec.Decode(tv, enc)
		if err != nil {
			return nil, err
		}
		e.Add(s)
	}
	return e, nil
}

// MarshalWorld serializes every live entity, ordered by entity id. Predicate
// indices are not part of the wire form.
func MarshalWorld[ID comparable, S Storage[ID]](w *World[ID, S], codec StorageCodec[ID, S], enc Encoding) ([]byte, error) {
	ids := make([]EntityID, 0, w.Len())
	for id := range w.All() {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	docs := make([][]TypedValue, 0, len(ids))
	for _, id := range ids {
		e := w.MustGet(id)
		entityDocs := make([]TypedValue, 0, e.Len())
		for s := range e.Storages() {
			tv, err := codec.Encode(s)
			if err != nil {
				return nil, err
			}
			entityDocs = append(entityDocs, tv)
		}
		docs = append(docs, entityDocs)
	}
	return enc.Marshal(docs)
}

// UnmarshalWorld rebuilds a world through the runtime Add path. Entity ids
// are issued fresh and predicate indices come back empty; callers re-register
// predicates after loading.
func UnmarshalWorld[ID comparable, S Storage[ID]](data []byte, codec StorageCodec[ID, S], enc Encoding) (*World[ID, S], error) {
	var docs [][]TypedValue
	if err := enc.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	w := newWorld[ID, S]()
	for _, entityDocs := range docs {
		e := NewEntity[ID, S]()
		for _, tv := range entityDocs {
			s, err := codec.Decode(tv, enc)
			if err != nil {
				return nil, err
			}
			e.Add(s)
		}
		if _, err := w.Add(e); err != nil {
			return nil, err
		}
	}
	return w, nil
}
