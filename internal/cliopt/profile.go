package cliopt

import (
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Profile describes the searchable tables of a database:
//
//	tables:
//	  users:
//	    fields: [name, email]
//	    weights: {name: 2, email: 1}
//	    relations:
//	      posts:
//	        table: posts
//	        foreign_key: user_id
//	        fields: [title, body]
type Profile struct {
	Tables map[string]TableProfile `yaml:"tables"`
}

type TableProfile struct {
	Fields    []string                   `yaml:"fields"`
	Weights   map[string]float64         `yaml:"weights"`
	Relations map[string]RelationProfile `yaml:"relations"`
}

type RelationProfile struct {
	Table      string   `yaml:"table"`
	ForeignKey string   `yaml:"foreign_key"`
	OwnerKey   string   `yaml:"owner_key"`
	Fields     []string `yaml:"fields"`
}

// LoadProfile reads a profile file. An empty path yields an empty profile.
func LoadProfile(path string) (*Profile, error) {
	p := &Profile{}
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read profile")
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, errors.Wrapf(err, "parse profile %s", path)
	}
	for name, t := range p.Tables {
		for rel, r := range t.Relations {
			if r.Table == "" {
				return nil, errors.Newf("profile %s: relation %s.%s has no table", path, name, rel)
			}
			if r.ForeignKey == "" {
				return nil, errors.Newf("profile %s: relation %s.%s has no foreign_key", path, name, rel)
			}
		}
	}
	return p, nil
}

// Table returns the profile of table, or a zero profile when it is not listed.
func (p *Profile) Table(name string) TableProfile {
	if p == nil || p.Tables == nil {
		return TableProfile{}
	}
	return p.Tables[name]
}

// RelationNames lists the relations of t in name order.
func (t TableProfile) RelationNames() []string {
	names := make([]string, 0, len(t.Relations))
	for name := range t.Relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
