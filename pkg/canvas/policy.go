package canvas

import "fmt"

// IDPolicy selects which fragment IDs receive the fragment prefix.
type IDPolicy string

const (
	// PolicyIsolate prefixes node and container IDs.
	PolicyIsolate IDPolicy = "isolate"
	// PolicyShare prefixes container IDs only.
	PolicyShare IDPolicy = "share"
)

// ParseIDPolicy converts a config or flag value to an IDPolicy. The empty
// string selects PolicyIsolate.
func ParseIDPolicy(s string) (IDPolicy, error) {
	switch IDPolicy(s) {
	case "", PolicyIsolate:
		return PolicyIsolate, nil
	case PolicyShare:
		return PolicyShare, nil
	default:
		return "", fmt.Errorf("unknown id policy %q (want %q or %q)", s, PolicyIsolate, PolicyShare)
	}
}

// AutoPrefix returns the generated prefix for the n-th automatic insertion.
func AutoPrefix(n int) string {
	return fmt.Sprintf("f%d-", n)
}

// namespace rewrites fragment-local IDs to canvas IDs.
type namespace struct {
	prefix     string
	policy     IDPolicy
	containers map[string]bool
}

func (ns namespace) node(id string) string {
	if ns.policy == PolicyShare {
		return id
	}
	return ns.prefix + id
}

func (ns namespace) container(id string) string {
	return ns.prefix + id
}

// ref rewrites an edge endpoint, which may name a node or a container.
func (ns namespace) ref(id string) string {
	if ns.containers[id] {
		return ns.container(id)
	}
	return ns.node(id)
}
