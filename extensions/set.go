package extensions

import "slices"

// XDevSpaceName is the advertisement string of the MNDX device space
// extension.
const XDevSpaceName = "XR_MNDX_xdev_space"

// Supported lists every extension this package can load.
func Supported() []string {
	return []string{XDevSpaceName}
}

// ExtraSet records which loadable extensions are present.
type ExtraSet struct {
	XDevSpace bool
}

// NewExtraSet marks each supported extension found in advertised. Names are
// matched exactly.
func NewExtraSet(advertised []string) ExtraSet {
	var s ExtraSet
	for _, name := range advertised {
		switch name {
		case XDevSpaceName:
			s.XDevSpace = true
		}
	}
	return s
}

// Names returns the extension names in the set, in the order they should be
// enabled at instance creation.
func (s ExtraSet) Names() []string {
	var names []string
	if s.XDevSpace {
		names = append(names, XDevSpaceName)
	}
	return names
}

// Without returns a copy of s with every extension in disabled removed.
func (s ExtraSet) Without(disabled []string) ExtraSet {
	if slices.Contains(disabled, XDevSpaceName) {
		s.XDevSpace = false
	}
	return s
}

// Empty reports whether no extension is set.
func (s ExtraSet) Empty() bool {
	return s == ExtraSet{}
}
