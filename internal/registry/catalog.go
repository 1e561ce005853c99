package registry

import (
	"fmt"
	"strings"
)

// errDuplicateAliasFormat reports an alias claimed by more than one record.
const errDuplicateAliasFormat = "alias %q claimed by both %q and %q"

// Catalog is a read-only table of capability records keyed by canonical model
// name, with a precomputed alias index for constant-time resolution. A Catalog
// is never mutated after construction, so concurrent readers need no locking.
type Catalog struct {
	records     map[string]Capabilities
	aliasIndex  map[string]string
	orderedKeys []string
}

// NewCatalog builds a catalog keying every record under its own ModelName.
// Aliases are indexed lowercase; an alias claimed by two records is a
// construction error because resolution would stop being deterministic.
func NewCatalog(capabilityRecords ...Capabilities) (*Catalog, error) {
	catalog := newEmptyCatalog(len(capabilityRecords))
	for _, record := range capabilityRecords {
		if indexError := catalog.index(record.ModelName, record); indexError != nil {
			return nil, indexError
		}
	}
	return catalog, nil
}

func newEmptyCatalog(sizeHint int) *Catalog {
	return &Catalog{
		records:     make(map[string]Capabilities, sizeHint),
		aliasIndex:  make(map[string]string),
		orderedKeys: make([]string, 0, sizeHint),
	}
}

// index registers a single record under the given canonical key. The key
// itself always resolves to the record; the record's self-declared ModelName
// may legitimately differ from the key in externally loaded tables.
func (catalog *Catalog) index(canonicalKey string, record Capabilities) error {
	if _, present := catalog.records[canonicalKey]; !present {
		catalog.orderedKeys = append(catalog.orderedKeys, canonicalKey)
	}
	catalog.records[canonicalKey] = record

	selfAliases := append([]string{canonicalKey}, record.Aliases...)
	for _, alias := range selfAliases {
		loweredAlias := strings.ToLower(strings.TrimSpace(alias))
		if loweredAlias == "" {
			continue
		}
		if existingOwner, claimed := catalog.aliasIndex[loweredAlias]; claimed && existingOwner != canonicalKey {
			return fmt.Errorf(errDuplicateAliasFormat, alias, existingOwner, canonicalKey)
		}
		catalog.aliasIndex[loweredAlias] = canonicalKey
	}
	return nil
}

// Resolve maps a caller-supplied model name onto its canonical key. Canonical
// keys match case-sensitively; aliases match case-insensitively. A name that
// is neither is returned unchanged so callers can re-check membership; a
// failed resolution is a no-op rather than an error.
func (catalog *Catalog) Resolve(requestedName string) string {
	if _, canonical := catalog.records[requestedName]; canonical {
		return requestedName
	}
	if canonicalKey, known := catalog.aliasIndex[strings.ToLower(strings.TrimSpace(requestedName))]; known {
		return canonicalKey
	}
	return requestedName
}

// Record returns the capability record stored under the exact canonical key.
func (catalog *Catalog) Record(canonicalKey string) (Capabilities, bool) {
	record, found := catalog.records[canonicalKey]
	return record, found
}

// Names returns the canonical keys in registration order.
func (catalog *Catalog) Names() []string {
	names := make([]string, len(catalog.orderedKeys))
	copy(names, catalog.orderedKeys)
	return names
}

// Each visits every record in registration order. Visiting order matters to
// callers that scan for a record's self-declared model name.
func (catalog *Catalog) Each(visit func(canonicalKey string, record Capabilities) bool) {
	for _, canonicalKey := range catalog.orderedKeys {
		if !visit(canonicalKey, catalog.records[canonicalKey]) {
			return
		}
	}
}
