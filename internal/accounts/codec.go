package accounts

import (
	"bytes"
	"encoding/json"
	"fmt"

	berrors "github.com/kuenishi/baccounts/internal/errors"
)

// Marshal serializes the store as indented JSON terminated by a newline.
func Marshal(s *Store) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding store: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes a serialized store.
func Parse(data []byte) (*Store, error) {
	var s *Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", berrors.ErrMalformedStore, err)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: document is null", berrors.ErrMalformedStore)
	}
	for i, p := range s.Profiles {
		if p == nil {
			return nil, fmt.Errorf("%w: profiles[%d] is null", berrors.ErrMalformedStore, i)
		}
		if p.Sites == nil {
			p.Sites = make(map[string]*Site)
		}
		for host, site := range p.Sites {
			if site == nil {
				return nil, fmt.Errorf("%w: profile %q site %q is null", berrors.ErrMalformedStore, p.Name, host)
			}
		}
	}
	if s.Profiles == nil {
		s.Profiles = []*Profile{}
	}
	return s, nil
}
