package launch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"
)

// PersistKey is the storage namespace for the durable sub-state.
const PersistKey = "launch-store"

var errMissingFavorites = errors.New("payload has no favorites field")

type payload struct {
	Favorites *[]string `json:"favorites"`
}

// EncodeFavorites serialises favorites as {"favorites":[...]}.
func EncodeFavorites(favorites []string) ([]byte, error) {
	if favorites == nil {
		favorites = []string{}
	}
	return json.Marshal(payload{Favorites: &favorites})
}

// DecodeFavorites parses a stored payload. Anything other than an object
// with exactly one "favorites" key holding an array of strings is rejected.
// Key matching is case sensitive. Repeated entries keep their first position.
func DecodeFavorites(data []byte) ([]string, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("decoding favorites: %w", err)
	}
	raw, ok := fields["favorites"]
	if !ok {
		return nil, errMissingFavorites
	}
	if len(fields) != 1 {
		return nil, errors.New("decoding favorites: unexpected fields in payload")
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decoding favorites: %w", err)
	}
	if entries == nil {
		return nil, errMissingFavorites
	}
	favorites := make([]string, 0, len(entries))
	for i, entry := range entries {
		entry = bytes.TrimSpace(entry)
		if len(entry) == 0 || entry[0] != '"' {
			return nil, fmt.Errorf("decoding favorites: entry %d is not a string", i)
		}
		var path string
		if err := json.Unmarshal(entry, &path); err != nil {
			return nil, fmt.Errorf("decoding favorites: entry %d: %w", i, err)
		}
		favorites = append(favorites, path)
	}
	return dedupe(favorites), nil
}

// decodeObject reads a single JSON object and fails on repeated keys or
// trailing data.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("payload is not an object")
	}

	fields := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("repeated key %q", key)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after payload")
	}
	return fields, nil
}

func orderedSet(paths []string) *orderedmap.OrderedMap {
	set := orderedmap.New()
	for _, p := range paths {
		if _, ok := set.Get(p); !ok {
			set.Set(p, struct{}{})
		}
	}
	return set
}

func dedupe(paths []string) []string {
	return orderedSet(paths).Keys()
}

// toggle removes path if present, otherwise appends it.
func toggle(paths []string, path string) []string {
	set := orderedSet(paths)
	if _, ok := set.Get(path); ok {
		set.Delete(path)
	} else {
		set.Set(path, struct{}{})
	}
	return set.Keys()
}
