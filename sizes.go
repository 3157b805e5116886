package binfield

// sizeRegistry pairs size fields with the next data field sharing their base name.
// While marshaling the value is the size field's declared width in bytes; while unmarshaling
// it is the count decoded from the wire.
//
// One registry spans one top-level Marshal or Unmarshal call; nested records and sequence
// elements reuse the enclosing call's registry rather than opening their own scope.
// Entries are write-once-read-once: a size field must immediately precede its data field,
// and unmatched entries are silently inert.
type sizeRegistry map[string]uint64

func (r sizeRegistry) set(base string, v uint64) {
	r[base] = v
}

// take returns and consumes the entry for base, if any.
func (r sizeRegistry) take(base string) (uint64, bool) {
	v, ok := r[base]
	if ok {
		delete(r, base)
	}
	return v, ok
}
