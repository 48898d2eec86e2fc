package accounts

import (
	"fmt"
	"io"
	"sort"
)

// Diff compares lhs and rhs field by field, writes one line per mismatch to
// w and returns the number of mismatches.
func Diff(lhs, rhs *Store, w io.Writer) int {
	r := &report{}
	lhs.diff(rhs, r)
	r.flush(w)
	return r.count
}

type report struct {
	count int
	lines []string
}

func (r *report) mismatch(scope, format string, args ...any) {
	r.count++
	line := fmt.Sprintf(format, args...)
	if scope != "" {
		line = scope + ": " + line
	}
	r.lines = append(r.lines, line)
}

func (r *report) flush(w io.Writer) {
	if w == nil {
		return
	}
	sort.Strings(r.lines)
	for _, line := range r.lines {
		fmt.Fprintln(w, line)
	}
}

func (s *Store) diff(o *Store, r *report) {
	if s.Version != o.Version {
		r.mismatch("", "version mismatch: %q != %q", s.Version, o.Version)
	}
	if s.DefaultAccount != o.DefaultAccount {
		r.mismatch("", "default account mismatch: %q != %q", s.DefaultAccount, o.DefaultAccount)
	}

	left, right := s.byName(), o.byName()
	for _, name := range union(left, right) {
		lp, inLeft := left[name]
		rp, inRight := right[name]
		scope := fmt.Sprintf("profile %q", name)
		switch {
		case inLeft && inRight:
			lp.diff(rp, name, r)
		case inLeft:
			r.mismatch(scope, "only in left")
		case inRight:
			r.mismatch(scope, "only in right")
		default:
			panic(fmt.Sprintf("accounts: profile %q is in neither store", name))
		}
	}
}

// byName indexes the first profile of each name.
func (s *Store) byName() map[string]*Profile {
	m := make(map[string]*Profile, len(s.Profiles))
	for _, p := range s.Profiles {
		if p == nil {
			continue
		}
		if _, ok := m[p.Name]; !ok {
			m[p.Name] = p
		}
	}
	return m
}

func (p *Profile) diff(o *Profile, name string, r *report) {
	for _, host := range union(p.Sites, o.Sites) {
		ls, inLeft := p.Sites[host]
		rs, inRight := o.Sites[host]
		scope := name + "/" + host
		switch {
		case inLeft && inRight:
			orEmpty(ls).diff(orEmpty(rs), scope, r)
		case inLeft:
			r.mismatch(scope, "only in left")
		case inRight:
			r.mismatch(scope, "only in right")
		default:
			panic(fmt.Sprintf("accounts: site %q is in neither profile", scope))
		}
	}
}

func (s *Site) diff(o *Site, scope string, r *report) {
	if s.URL != o.URL {
		r.mismatch(scope, "url mismatch: %q != %q", s.URL, o.URL)
	}
	if s.Name != o.Name {
		r.mismatch(scope, "name mismatch: %q != %q", s.Name, o.Name)
	}
	if s.Secret != o.Secret {
		r.mismatch(scope, "secret mismatch: (%d bytes) != (%d bytes)", len(s.Secret), len(o.Secret))
	}
	if s.Account != o.Account {
		r.mismatch(scope, "account mismatch: %q != %q", s.Account, o.Account)
	}
}

func orEmpty(s *Site) *Site {
	if s == nil {
		return &Site{}
	}
	return s
}

func union[V any](a, b map[string]V) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
