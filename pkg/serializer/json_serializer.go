// Package serializer provides the encode/decode capability used to
// round-trip values through the state store and the session cookie.
package serializer

import "encoding/json"

// JSONSerializer is an interface for objects that can serialize and
// deserialize data.
type JSONSerializer interface {
	// Encode serializes v into a byte slice.
	Encode(v interface{}) ([]byte, error)

	// Decode deserializes data into v.
	Decode(data []byte, v interface{}) error
}

// JSONSerialization implements JSONSerializer with encoding/json, so
// stored state stays inspectable in Redis.
type JSONSerialization struct{}

func NewJSONSerialization() *JSONSerialization {
	return &JSONSerialization{}
}

func (js *JSONSerialization) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (js *JSONSerialization) Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
