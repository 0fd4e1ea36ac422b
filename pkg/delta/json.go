package delta

import "encoding/json"

// wireDelta is the canonical JSON shape: {"ops":[...]}.
type wireDelta struct {
	Ops []json.RawMessage `json:"ops"`
}

type wireOp struct {
	Insert     interface{} `json:"insert,omitempty"`
	Retain     interface{} `json:"retain,omitempty"`
	Delete     *int        `json:"delete,omitempty"`
	Attributes Attributes  `json:"attributes,omitempty"`
}

// MarshalJSON encodes the Delta in the canonical {"ops":[...]} shape.
// Attribute map keys are emitted in lexicographic order, matching
// encoding/json's default behavior for map[string]interface{}.
func (d *Delta) MarshalJSON() ([]byte, error) {
	ops := make([]wireOp, len(d.ops))
	for i, op := range d.ops {
		var w wireOp
		w.Attributes = op.Attributes
		switch op.Type {
		case InsertType:
			if op.IsEmbed() {
				w.Insert = map[string]interface{}(op.Embed)
			} else {
				w.Insert = op.Str
			}
		case RetainType:
			if op.IsEmbed() {
				w.Retain = map[string]interface{}(op.Embed)
			} else {
				n := op.Len
				w.Retain = n
			}
		case DeleteType:
			n := op.Len
			w.Delete = &n
		}
		ops[i] = w
	}
	return json.Marshal(wireDelta{Ops: rawOps(ops)})
}

func rawOps(ops []wireOp) []json.RawMessage {
	out := make([]json.RawMessage, len(ops))
	for i, op := range ops {
		b, err := json.Marshal(op)
		if err != nil {
			// wireOp only ever holds JSON-native values built by this
			// package; a marshal failure here means a caller constructed
			// an Op with a non-JSON-serializable embed payload, which is
			// outside what this library can encode.
			b = []byte("null")
		}
		out[i] = b
	}
	return out
}

// UnmarshalJSON decodes the canonical {"ops":[...]} shape, rebuilding the
// Delta through the normal builder so the result is canonical regardless
// of whether the input already was. Any shape violation (unknown variant,
// both/neither of insert/retain/delete, a non-positive length, or an
// embed object that does not have exactly one key) returns ErrMalformedOp.
func (d *Delta) UnmarshalJSON(data []byte) error {
	var wire wireDelta
	if err := json.Unmarshal(data, &wire); err != nil {
		return ErrMalformedOp
	}

	result := New()
	for _, raw := range wire.Ops {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return ErrMalformedOp
		}

		insertRaw, hasInsert := fields["insert"]
		retainRaw, hasRetain := fields["retain"]
		deleteRaw, hasDelete := fields["delete"]
		present := 0
		for _, ok := range []bool{hasInsert, hasRetain, hasDelete} {
			if ok {
				present++
			}
		}
		if present != 1 {
			return ErrMalformedOp
		}

		var attrs Attributes
		if attrRaw, ok := fields["attributes"]; ok {
			if err := json.Unmarshal(attrRaw, &attrs); err != nil {
				return ErrMalformedOp
			}
		}

		switch {
		case hasInsert:
			var text string
			if err := json.Unmarshal(insertRaw, &text); err == nil {
				result.Insert(text, attrs)
				continue
			}
			embed, err := decodeEmbedObject(insertRaw)
			if err != nil {
				return err
			}
			result.InsertEmbed(embed, attrs)

		case hasRetain:
			var n float64
			if err := json.Unmarshal(retainRaw, &n); err == nil {
				if n <= 0 || n != float64(int(n)) {
					return ErrMalformedOp
				}
				result.Retain(int(n), attrs)
				continue
			}
			embed, err := decodeEmbedObject(retainRaw)
			if err != nil {
				return err
			}
			result.RetainEmbed(embed, attrs)

		case hasDelete:
			var n int
			if err := json.Unmarshal(deleteRaw, &n); err != nil || n <= 0 {
				return ErrMalformedOp
			}
			result.Delete(n)
		}
	}

	*d = *result
	return nil
}

func decodeEmbedObject(raw json.RawMessage) (Attributes, error) {
	var embed map[string]interface{}
	if err := json.Unmarshal(raw, &embed); err != nil || len(embed) != 1 {
		return nil, ErrMalformedOp
	}
	return Attributes(embed), nil
}

// FromJSON parses the canonical {"ops":[...]} shape into a new Delta.
func FromJSON(data []byte) (*Delta, error) {
	d := New()
	if err := json.Unmarshal(data, d); err != nil {
		return nil, err
	}
	return d, nil
}
