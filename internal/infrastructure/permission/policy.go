package permission

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	ResourceTicket       = "ticket"
	ResourceEmailRequest = "email_request"

	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionComment = "comment"
)

//go:embed default_policy.yaml
var defaultPolicy []byte

// Policy maps role -> resource -> actions.
type Policy struct {
	Roles map[string]map[string][]string `yaml:"roles"`
}

func ParsePolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}
	if len(p.Roles) == 0 {
		return nil, fmt.Errorf("policy defines no roles")
	}
	return &p, nil
}

// LoadPolicyFile reads path, falling back to the built-in policy when
// path is empty or missing.
func LoadPolicyFile(path string) (*Policy, error) {
	if path == "" {
		return ParsePolicy(defaultPolicy)
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ParsePolicy(defaultPolicy)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return ParsePolicy(data)
}

// Rules flattens the policy into sorted (role, resource, action) triples.
func (p *Policy) Rules() [][3]string {
	var rules [][3]string
	for role, resources := range p.Roles {
		for resource, actions := range resources {
			for _, action := range actions {
				rules = append(rules, [3]string{role, resource, action})
			}
		}
	}
	sort.Slice(rules, func(i, j int) bool {
		a, b := rules[i], rules[j]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[2] < b[2]
	})
	return rules
}
