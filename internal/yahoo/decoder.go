package yahoo

import (
	"github.com/clbanning/mxj/v2"

	"github.com/jarinudom/blitzgremlin/internal/tree"
)

// Decoder turns a raw upstream response body into a generic tree.
// This allows for mock implementations to be used in tests.
type Decoder interface {
	Decode(raw []byte) (tree.Node, error)
}

// XMLDecoder decodes the upstream's XML payloads into nested
// map[string]any values, the same shape the rest of the engine consumes.
type XMLDecoder struct{}

var _ Decoder = (*XMLDecoder)(nil)

func (XMLDecoder) Decode(raw []byte) (tree.Node, error) {
	m, err := mxj.NewMapXml(raw)
	if err != nil {
		return nil, err
	}
	return map[string]any(m), nil
}
