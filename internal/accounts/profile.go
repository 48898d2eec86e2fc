package accounts

import (
	"fmt"
	"sort"
	"strings"

	berrors "github.com/kuenishi/baccounts/internal/errors"
)

// Profile is a named set of sites keyed by host.
type Profile struct {
	Name    string           `json:"Name"`
	Sites   map[string]*Site `json:"Sites"`
	Default bool             `json:"Default"`
}

// NewProfile returns an empty profile.
func NewProfile(name string, isDefault bool) *Profile {
	return &Profile{
		Name:    name,
		Sites:   make(map[string]*Site),
		Default: isDefault,
	}
}

// Hosts returns the site keys in sorted order.
func (p *Profile) Hosts() []string {
	hosts := make([]string, 0, len(p.Sites))
	for host := range p.Sites {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}

// Matches returns every site whose URL contains query, sorted by URL.
func (p *Profile) Matches(query string) []*Site {
	var matched []*Site
	for _, site := range p.Sites {
		if site != nil && strings.Contains(site.URL, query) {
			matched = append(matched, site)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].URL < matched[j].URL
	})
	return matched
}

// FindSite returns the only site whose URL contains query.
// Zero or several matches fail with ErrAmbiguousOrMissingSite.
func (p *Profile) FindSite(query string) (*Site, error) {
	matched := p.Matches(query)
	if len(matched) != 1 {
		return nil, fmt.Errorf("%w: %d sites in profile %q match %q",
			berrors.ErrAmbiguousOrMissingSite, len(matched), p.Name, query)
	}
	return matched[0], nil
}

// UpdateSite inserts site under the host of its URL, replacing any site
// already stored for that host. The site's display name is refreshed from
// the host.
func (p *Profile) UpdateSite(site *Site) error {
	host, err := HostOf(site.URL)
	if err != nil {
		return err
	}
	if p.Sites == nil {
		p.Sites = make(map[string]*Site)
	}
	site.Name = host
	p.Sites[host] = site
	return nil
}

// RemoveSite deletes the only site matching query and returns it.
func (p *Profile) RemoveSite(query string) (*Site, error) {
	site, err := p.FindSite(query)
	if err != nil {
		return nil, err
	}
	for host, s := range p.Sites {
		if s == site {
			delete(p.Sites, host)
		}
	}
	return site, nil
}

// Clone returns a deep copy, so callers can stage changes before handing the
// result to Store.UpdateProfile.
func (p *Profile) Clone() *Profile {
	c := &Profile{
		Name:    p.Name,
		Sites:   make(map[string]*Site, len(p.Sites)),
		Default: p.Default,
	}
	for host, site := range p.Sites {
		if site != nil {
			c.Sites[host] = site.clone()
		}
	}
	return c
}
