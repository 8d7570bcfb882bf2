package pure_utils

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// CanonicalJSON re-encodes a JSON document into a canonical byte form:
// object keys are sorted, numbers keep their original literal, HTML escaping
// is disabled. Two semantically equal documents always canonicalize to the
// same bytes, which is what the audit hash relies on.
//
// A nil or empty input canonicalizes to the JSON literal "null".
func CanonicalJSON(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return []byte("null"), nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, errors.Wrap(err, "canonical json: invalid input document")
	}

	buf := bytes.Buffer{}
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, errors.Wrap(err, "canonical json: encode")
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}
