// Package restriction decides which models callers may use, based on the
// allow-list and deny-list configuration loaded at startup.
package restriction

import (
	"strings"
	"sync/atomic"

	"github.com/temirov/model-gateway/internal/registry"
)

// Gate answers whether a model may be used. It is consulted with the canonical
// name for policy matching and with the originally requested name so policy
// entries written against an alias still match.
type Gate interface {
	IsAllowed(providerKind registry.ProviderKind, canonicalName string, requestedName string) bool
}

// ruleSnapshot holds one immutable generation of parsed policy rules.
type ruleSnapshot struct {
	allowedNames  map[string]struct{}
	disabledNames map[string]struct{}
}

// Policy implements Gate from the ALLOWED_MODELS and DISABLED_MODELS lists.
// Matching is case-insensitive. A deny entry always wins; an empty allow-list
// permits every model. Reload swaps a complete snapshot so concurrent readers
// never observe a partially updated policy.
type Policy struct {
	snapshot atomic.Pointer[ruleSnapshot]
}

// NewPolicy parses the comma-separated allow and deny lists into a policy.
func NewPolicy(allowedList string, disabledList string) *Policy {
	policy := &Policy{}
	policy.Reload(allowedList, disabledList)
	return policy
}

// Reload atomically replaces the policy rules with freshly parsed lists.
func (policy *Policy) Reload(allowedList string, disabledList string) {
	policy.snapshot.Store(&ruleSnapshot{
		allowedNames:  parseNameList(allowedList),
		disabledNames: parseNameList(disabledList),
	})
}

// IsAllowed reports whether the model clears both the deny and allow rules.
func (policy *Policy) IsAllowed(providerKind registry.ProviderKind, canonicalName string, requestedName string) bool {
	rules := policy.snapshot.Load()
	loweredCanonical := strings.ToLower(canonicalName)
	loweredRequested := strings.ToLower(requestedName)

	if _, denied := rules.disabledNames[loweredCanonical]; denied {
		return false
	}
	if _, denied := rules.disabledNames[loweredRequested]; denied {
		return false
	}
	if len(rules.allowedNames) == 0 {
		return true
	}
	if _, allowed := rules.allowedNames[loweredCanonical]; allowed {
		return true
	}
	_, allowed := rules.allowedNames[loweredRequested]
	return allowed
}

// parseNameList splits a comma-separated model list into a lowercase set.
func parseNameList(rawList string) map[string]struct{} {
	parsedNames := make(map[string]struct{})
	for _, entry := range strings.Split(rawList, ",") {
		trimmedEntry := strings.ToLower(strings.TrimSpace(entry))
		if trimmedEntry == "" {
			continue
		}
		parsedNames[trimmedEntry] = struct{}{}
	}
	return parsedNames
}
