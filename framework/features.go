package framework

import "sort"

// Features is the set of tags a test may require or exclude. The meanings of these strings are
// defined by the configuration layer; the controller only hosts the set so that it is visible
// process-wide.
type Features map[string]struct{}

// NewFeatures returns a set containing the specified tags.
func NewFeatures(names ...string) Features {
	fs := make(Features, len(names))
	for _, n := range names {
		fs[n] = struct{}{}
	}
	return fs
}

// Has returns true if the specified tag is in the set.
func (fs Features) Has(name string) bool {
	_, ok := fs[name]
	return ok
}

// HasAny returns true if any of the specified tags is in the set.
func (fs Features) HasAny(names ...string) bool {
	for _, n := range names {
		if fs.Has(n) {
			return true
		}
	}
	return false
}

func (fs Features) Add(names ...string) {
	for _, n := range names {
		fs[n] = struct{}{}
	}
}

func (fs Features) Remove(name string) {
	delete(fs, name)
}

// List returns the tags in alphabetical order.
func (fs Features) List() []string {
	ret := make([]string, 0, len(fs))
	for n := range fs {
		ret = append(ret, n)
	}
	sort.Strings(ret)
	return ret
}
