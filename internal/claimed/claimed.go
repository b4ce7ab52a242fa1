// Package claimed loads and parses the user-maintained set of pumpkin
// IDs that have already been obtained.
package claimed

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"sort"
	"strconv"
)

// Set holds claimed pumpkin IDs.
type Set map[int]struct{}

// ErrUnrecognized is returned when pasted claimed data is valid JSON but
// not in a shape the tracker understands.
var ErrUnrecognized = errors.New(`expected format: {"claimed": [1,2,3...]} or [1,2,3...]`)

func NewSet(ids ...int) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Add(id int) {
	s[id] = struct{}{}
}

// IDs returns the claimed IDs in ascending order.
func (s Set) IDs() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Parse decodes pasted claimed data. It accepts a bare array of IDs or
// an object with a "claimed" array; anything else is ErrUnrecognized.
// Array elements may be JSON numbers or digit strings; other elements
// are skipped.
func Parse(b []byte) (Set, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case []any:
		return fromList(t), nil
	case map[string]any:
		if list, ok := t["claimed"].([]any); ok {
			return fromList(list), nil
		}
		return nil, ErrUnrecognized
	default:
		return nil, ErrUnrecognized
	}
}

// LoadFile reads the claimed file, tolerating every failure mode: an
// absent file, unreadable contents, or an unrecognized shape all degrade
// to the empty set with a logged warning. On top of the Parse encodings
// it accepts an object keyed by numeric-like IDs.
func LoadFile(path string, logger *log.Logger) Set {
	if logger == nil {
		logger = log.Default()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("[claimed] %s not found, starting with empty set", path)
		} else {
			logger.Printf("[claimed] read %s: %v", path, err)
		}
		return Set{}
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		logger.Printf("[claimed] parse %s: %v", path, err)
		return Set{}
	}

	switch t := v.(type) {
	case []any:
		return fromList(t)
	case map[string]any:
		if list, ok := t["claimed"].([]any); ok {
			return fromList(list)
		}
		return fromNumericKeys(t)
	default:
		logger.Printf("[claimed] unexpected data shape in %s", path)
		return Set{}
	}
}

// ReadRaw returns the claimed file contents as raw JSON for echoing back
// to the front end.
func ReadRaw(path string) (json.RawMessage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(b) {
		return nil, errors.New("claimed file is not valid JSON")
	}
	return json.RawMessage(b), nil
}

func fromList(list []any) Set {
	s := Set{}
	for _, e := range list {
		if id, ok := asID(e); ok {
			s.Add(id)
		}
	}
	return s
}

func fromNumericKeys(m map[string]any) Set {
	s := Set{}
	for k := range m {
		if id, err := strconv.Atoi(k); err == nil && id >= 0 {
			s.Add(id)
		}
	}
	return s
}

func asID(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		id := int(t)
		if float64(id) == t {
			return id, true
		}
	case string:
		if id, err := strconv.Atoi(t); err == nil {
			return id, true
		}
	case json.Number:
		if id, err := strconv.Atoi(t.String()); err == nil {
			return id, true
		}
	}
	return 0, false
}
