// ml/serialize.go
package ml

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Marshal serializes a trained classifier into a single opaque blob. The blob
// carries no version field; compatibility across releases rests entirely on
// the stability of the BoostedTrees structure.
func Marshal(c *BoostedTrees) ([]byte, error) {
	if c == nil || len(c.Trees) == 0 {
		return nil, ErrNotTrained
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode classifier: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal restores a classifier from a blob produced by Marshal.
func Unmarshal(data []byte) (*BoostedTrees, error) {
	var c BoostedTrees
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode classifier: %w", err)
	}
	if len(c.Trees) == 0 {
		return nil, fmt.Errorf("decoded classifier contains no trees")
	}
	return &c, nil
}
