// Package cache provides the layered byte cache used to avoid re-embedding
// sentences that were seen before. Values are serialized embedding vectors;
// keys bind the text to the embedding model that produced the vector.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"time"
)

// Cache defines the caching contract.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// EmbeddingKey generates a cache key from the model name and input text.
// Different models must never share vectors.
func EmbeddingKey(model, text string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + text))
	return "thesisgrade:v1:" + hex.EncodeToString(hash[:])
}

// EncodeVector serializes an embedding vector for cache storage.
func EncodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// DecodeVector deserializes a cached embedding vector.
// Returns false when the payload length is not a multiple of 4.
func DecodeVector(buf []byte) ([]float32, bool) {
	if len(buf)%4 != 0 {
		return nil, false
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec, true
}
