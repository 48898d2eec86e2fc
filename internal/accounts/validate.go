package accounts

import (
	"fmt"
	"strings"

	"github.com/hengadev/errsx"
)

// Validate reports every violation of the store conventions: duplicate
// profile names, more than one default profile, and sites whose key is not
// the host of their URL. Loading and mutation stay lenient; this is for
// diagnostics.
func (s *Store) Validate() error {
	errs := make(errsx.Map)

	firstIndex := make(map[string]int)
	var defaults []string
	for i, p := range s.Profiles {
		if p == nil {
			errs.Set(fmt.Sprintf("profiles[%d]", i), "profile is null")
			continue
		}
		if p.Name == "" {
			errs.Set(fmt.Sprintf("profiles[%d]", i), "profile name is empty")
		}
		if j, ok := firstIndex[p.Name]; ok {
			errs.Set(fmt.Sprintf("profiles[%d]", i), fmt.Sprintf("duplicate profile name %q (first at profiles[%d])", p.Name, j))
		} else {
			firstIndex[p.Name] = i
		}
		if p.Default {
			defaults = append(defaults, p.Name)
		}

		for _, host := range p.Hosts() {
			key := fmt.Sprintf("profiles[%d].sites[%s]", i, host)
			site := p.Sites[host]
			if site == nil {
				errs.Set(key, "site is null")
				continue
			}
			h, err := HostOf(site.URL)
			if err != nil {
				errs.Set(key, err)
				continue
			}
			if h != host {
				errs.Set(key, fmt.Sprintf("keyed by %q but URL host is %q", host, h))
			}
		}
	}
	if len(defaults) > 1 {
		errs.Set("default", fmt.Sprintf("%d profiles are marked default: %s", len(defaults), strings.Join(defaults, ", ")))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
