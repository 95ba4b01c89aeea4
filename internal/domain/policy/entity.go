package policy

import "time"

// Document is a policy override as plain data: top-level section name
// ("nps", "nhis", "ei", "local_tax", "proration") to its key/value pairs.
// Keeping layers as plain data keeps the merge step trivially testable.
type Document map[string]map[string]any

// Clone deep-copies the document so callers can merge without aliasing.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for section, keys := range d {
		sec := make(map[string]any, len(keys))
		for k, v := range keys {
			sec[k] = v
		}
		out[section] = sec
	}
	return out
}

// Merge overlays patch onto d. Each patch section shallow-merges into the
// matching section of d: specified keys replace, unspecified keys survive.
// A layer is applied whole or not at all; Merge never partially applies.
func (d Document) Merge(patch Document) {
	for section, keys := range patch {
		dst, ok := d[section]
		if !ok {
			dst = make(map[string]any, len(keys))
			d[section] = dst
		}
		for k, v := range keys {
			dst[k] = v
		}
	}
}

// Setting is one persisted policy override row. A nil CompanyID means the
// override is global for the year.
type Setting struct {
	ID         string
	CompanyID  *string
	Year       int
	PolicyJSON string
	UpdatedAt  time.Time
}
