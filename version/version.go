// Package version is the catalog of Minecraft: Java Edition protocol versions
// the server speaks.
//
// Several client releases share one protocol number; the catalog is keyed by
// that number and all comparisons use it, never the declaration order.
package version

import (
	"strings"
)

// Version is one protocol revision. Values are created once by this package
// and compared by pointer or protocol number; they are never mutated.
type Version struct {
	protocol int32
	names    []string
}

func newVersion(protocol int32, names ...string) *Version {
	return &Version{protocol: protocol, names: names}
}

var (
	Undefined = newVersion(-1, "UNDEFINED")

	V1_7_2  = newVersion(4, "1.7.2", "1.7.3", "1.7.4", "1.7.5")
	V1_7_6  = newVersion(5, "1.7.6", "1.7.7", "1.7.8", "1.7.9", "1.7.10")
	V1_8    = newVersion(47, "1.8", "1.8.1", "1.8.2", "1.8.3", "1.8.4", "1.8.5", "1.8.6", "1.8.7", "1.8.8")
	V1_9    = newVersion(107, "1.9")
	V1_9_1  = newVersion(108, "1.9.1")
	V1_9_2  = newVersion(109, "1.9.2")
	V1_9_4  = newVersion(110, "1.9.3", "1.9.4")
	V1_10   = newVersion(210, "1.10", "1.10.1", "1.10.2")
	V1_11   = newVersion(315, "1.11")
	V1_11_1 = newVersion(316, "1.11.1", "1.11.2")
	V1_12   = newVersion(335, "1.12")
	V1_12_1 = newVersion(338, "1.12.1")
	V1_12_2 = newVersion(340, "1.12.2")
	V1_13   = newVersion(393, "1.13")
	V1_13_1 = newVersion(401, "1.13.1")
	V1_13_2 = newVersion(404, "1.13.2")
	V1_14   = newVersion(477, "1.14")
	V1_14_1 = newVersion(480, "1.14.1")
	V1_14_2 = newVersion(485, "1.14.2")
	V1_14_3 = newVersion(490, "1.14.3")
	V1_14_4 = newVersion(498, "1.14.4")
	V1_15   = newVersion(573, "1.15")
	V1_15_1 = newVersion(575, "1.15.1")
	V1_15_2 = newVersion(578, "1.15.2")
	V1_16   = newVersion(735, "1.16")
	V1_16_1 = newVersion(736, "1.16.1")
	V1_16_2 = newVersion(751, "1.16.2")
	V1_16_3 = newVersion(753, "1.16.3")
	V1_16_4 = newVersion(754, "1.16.4", "1.16.5")
	V1_17   = newVersion(755, "1.17")
	V1_17_1 = newVersion(756, "1.17.1")
	V1_18   = newVersion(757, "1.18", "1.18.1")
	V1_18_2 = newVersion(758, "1.18.2")
	V1_19   = newVersion(759, "1.19")
	V1_19_1 = newVersion(760, "1.19.1", "1.19.2")
	V1_19_3 = newVersion(761, "1.19.3")
	V1_19_4 = newVersion(762, "1.19.4")
	V1_20   = newVersion(763, "1.20", "1.20.1")
	V1_20_2 = newVersion(764, "1.20.2")
	V1_20_3 = newVersion(765, "1.20.3", "1.20.4")
	V1_20_5 = newVersion(766, "1.20.5", "1.20.6")
	V1_21   = newVersion(767, "1.21", "1.21.1")
	V1_21_2 = newVersion(768, "1.21.2", "1.21.3")
	V1_21_4 = newVersion(769, "1.21.4")
)

// Protocol returns the numeric protocol identifier.
func (v *Version) Protocol() int32 {
	return v.protocol
}

// Names returns the client release names sharing this protocol number.
func (v *Version) Names() []string {
	names := make([]string, len(v.names))
	copy(names, v.names)
	return names
}

// Prev returns the default catalog entry released right before v, or nil
// for the oldest supported version and Undefined.
func (v *Version) Prev() *Version {
	return catalog.Prev(v)
}

// String returns the release name, or a "first-last" range when several
// releases share the protocol number.
func (v *Version) String() string {
	if len(v.names) == 1 {
		return v.names[0]
	}
	return v.names[0] + "-" + v.names[len(v.names)-1]
}

func (v *Version) More(other *Version) bool {
	return v.protocol > other.protocol
}

func (v *Version) MoreOrEqual(other *Version) bool {
	return v.protocol >= other.protocol
}

func (v *Version) Less(other *Version) bool {
	return v.protocol < other.protocol
}

func (v *Version) LessOrEqual(other *Version) bool {
	return v.protocol <= other.protocol
}

// FromTo reports whether v lies within [min, max], both inclusive.
func (v *Version) FromTo(min, max *Version) bool {
	return v.protocol >= min.protocol && v.protocol <= max.protocol
}

// IsSupported is false only for Undefined.
func (v *Version) IsSupported() bool {
	return v != Undefined
}

// Registry is an immutable lookup table over an ordered list of versions.
// It is safe for concurrent use.
type Registry struct {
	ordered  []*Version
	index    map[*Version]int
	byNumber map[int32]*Version
	byName   map[string]*Version
}

// NewRegistry indexes the given versions in order. Versions must be listed
// oldest first with unique protocol numbers. The versions themselves are left
// untouched, so one version may belong to several registries.
func NewRegistry(versions ...*Version) *Registry {
	r := &Registry{
		ordered:  append([]*Version(nil), versions...),
		index:    make(map[*Version]int, len(versions)),
		byNumber: make(map[int32]*Version, len(versions)),
		byName:   make(map[string]*Version),
	}

	var last *Version
	for _, v := range versions {
		if _, ok := r.byNumber[v.protocol]; ok {
			panic("version: duplicate protocol number " + v.String())
		}
		if last != nil && v.protocol <= last.protocol {
			panic("version: " + v.String() + " is listed out of order")
		}
		r.index[v] = len(r.index)
		last = v

		r.byNumber[v.protocol] = v
		for _, name := range v.names {
			r.byName[name] = v
		}
	}
	return r
}

// Of returns the version with the given protocol number, or Undefined.
func (r *Registry) Of(protocol int32) *Version {
	if v, ok := r.byNumber[protocol]; ok {
		return v
	}
	return Undefined
}

// ByName finds the version a client release name such as "1.8.4" belongs to.
func (r *Registry) ByName(name string) *Version {
	if v, ok := r.byName[strings.TrimSpace(name)]; ok {
		return v
	}
	return Undefined
}

// Prev returns the version listed right before v, or nil when v is the
// first one or not part of r.
func (r *Registry) Prev(v *Version) *Version {
	i, ok := r.index[v]
	if !ok || i == 0 {
		return nil
	}
	return r.ordered[i-1]
}

func (r *Registry) Min() *Version {
	return r.ordered[0]
}

func (r *Registry) Max() *Version {
	return r.ordered[len(r.ordered)-1]
}

// All returns the versions oldest first.
func (r *Registry) All() []*Version {
	all := make([]*Version, len(r.ordered))
	copy(all, r.ordered)
	return all
}

var catalog = NewRegistry(
	V1_7_2, V1_7_6, V1_8,
	V1_9, V1_9_1, V1_9_2, V1_9_4,
	V1_10,
	V1_11, V1_11_1,
	V1_12, V1_12_1, V1_12_2,
	V1_13, V1_13_1, V1_13_2,
	V1_14, V1_14_1, V1_14_2, V1_14_3, V1_14_4,
	V1_15, V1_15_1, V1_15_2,
	V1_16, V1_16_1, V1_16_2, V1_16_3, V1_16_4,
	V1_17, V1_17_1,
	V1_18, V1_18_2,
	V1_19, V1_19_1, V1_19_3, V1_19_4,
	V1_20, V1_20_2, V1_20_3, V1_20_5,
	V1_21, V1_21_2, V1_21_4,
)

// Default returns the catalog of every supported version.
func Default() *Registry {
	return catalog
}

// Of looks up a protocol number in the default catalog.
func Of(protocol int32) *Version {
	return catalog.Of(protocol)
}

func Min() *Version {
	return catalog.Min()
}

func Max() *Version {
	return catalog.Max()
}
