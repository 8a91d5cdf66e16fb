package encoding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/serial"
)

// Envelope key structs. A $-prefixed key marks the shapes JSON cannot
// express natively; everything else round-trips as plain JSON.
type (
	defEnvelope struct {
		Def   int64           `json:"$def"`
		Value json.RawMessage `json:"$value"`
	}

	refEnvelope struct {
		Ref refBody `json:"$ref"`
	}

	refBody struct {
		Type string `json:"type"`
		ID   int64  `json:"id"`
	}

	dictEnvelope struct {
		Dict []dictPair `json:"$dict"`
	}

	dictPair struct {
		K string          `json:"k"`
		V json.RawMessage `json:"v"`
	}
)

// Marshal encodes a wire value as JSON bytes.
func Marshal(v *serial.Value) ([]byte, error) {
	raw, err := encode(v)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Unmarshal decodes JSON bytes produced by [Marshal] back into a wire value.
// Returns an INVALID_INPUT error for malformed input.
func Unmarshal(data []byte) (*serial.Value, error) {
	return decode(data)
}

// Write encodes v as indented JSON to w.
func Write(v *serial.Value, w io.Writer) error {
	raw, err := encode(v)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "indent encoded value")
	}
	buf.WriteByte('\n')
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Read decodes a wire value from r.
func Read(r io.Reader) (*serial.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return decode(data)
}

// WriteFile writes a wire value to a JSON file at path.
// The file is created with 0644 permissions.
func WriteFile(v *serial.Value, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(v, f)
}

// ReadFile reads a JSON file and returns the decoded wire value.
func ReadFile(path string) (*serial.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// =============================================================================
// Encoding
// =============================================================================

func encode(v *serial.Value) (json.RawMessage, error) {
	inner, err := encodeVariant(v)
	if err != nil {
		return nil, err
	}
	if !v.IsDefinition() {
		return inner, nil
	}

	id, err := v.AsDefinition()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(defEnvelope{Def: id, Value: inner})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode definition %d", id)
	}
	return raw, nil
}

func encodeVariant(v *serial.Value) (json.RawMessage, error) {
	switch v.Kind() {
	case serial.KindNull:
		return json.RawMessage("null"), nil

	case serial.KindBool:
		b, _ := v.AsBool()
		return json.Marshal(b)

	case serial.KindReal:
		f, _ := v.AsReal()
		raw, err := json.Marshal(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode real %v", f)
		}
		return raw, nil

	case serial.KindString:
		s, _ := v.AsString()
		return json.Marshal(s)

	case serial.KindRef:
		ref, _ := v.AsRef()
		return json.Marshal(refEnvelope{Ref: refBody(ref)})

	case serial.KindList:
		items, _ := v.AsList()
		encoded := make([]json.RawMessage, len(items))
		for i, item := range items {
			raw, err := encode(item)
			if err != nil {
				return nil, err
			}
			encoded[i] = raw
		}
		return json.Marshal(encoded)

	case serial.KindDict:
		entries, _ := v.AsDict()
		pairs := make([]dictPair, len(entries))
		for i, e := range entries {
			raw, err := encode(e.Value)
			if err != nil {
				return nil, err
			}
			pairs[i] = dictPair{K: e.Key, V: raw}
		}
		return json.Marshal(dictEnvelope{Dict: pairs})
	}

	return nil, errors.New(errors.ErrCodeInternal, "unencodable variant %v", v.Kind())
}

// =============================================================================
// Decoding
// =============================================================================

func decode(data []byte) (*serial.Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty input")
	}

	switch trimmed[0] {
	case 'n':
		if !bytes.Equal(trimmed, []byte("null")) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "malformed literal %q", trimmed)
		}
		return serial.Null(), nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode boolean")
		}
		return serial.Bool(b), nil

	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode string")
		}
		return serial.String(s), nil

	case '[':
		return decodeList(trimmed)

	case '{':
		return decodeObject(trimmed)
	}

	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode number")
	}
	return serial.Real(f), nil
}

func decodeList(data []byte) (*serial.Value, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode list")
	}

	out := serial.NewList()
	for i, raw := range items {
		item, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("list item %d: %w", i, err)
		}
		if err := out.Append(item); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeObject(data []byte) (*serial.Value, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode object")
	}

	switch {
	case keys["$def"] != nil:
		var env defEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode definition envelope")
		}
		inner, err := decode(env.Value)
		if err != nil {
			return nil, fmt.Errorf("definition %d: %w", env.Def, err)
		}
		def, err := inner.Define(env.Def)
		if err != nil {
			return nil, err
		}
		return def, nil

	case keys["$ref"] != nil:
		var env refEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode reference envelope")
		}
		return serial.Reference(env.Ref.Type, env.Ref.ID), nil

	case keys["$dict"] != nil:
		var env dictEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dictionary envelope")
		}
		out := serial.NewDict()
		for _, pair := range env.Dict {
			item, err := decode(pair.V)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", pair.K, err)
			}
			if err := out.Set(pair.K, item); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	return nil, errors.New(errors.ErrCodeInvalidInput,
		"object without $def, $ref, or $dict envelope key")
}
