package version

import (
	"slices"
	"testing"
)

func TestOf(t *testing.T) {
	for _, v := range Default().All() {
		got := Of(v.Protocol())
		if got != v {
			t.Errorf("Of(%d) = %s, want %s", v.Protocol(), got, v)
		}
		if got.Protocol() != v.Protocol() {
			t.Errorf("Of(%d).Protocol() = %d", v.Protocol(), got.Protocol())
		}
	}
}

func TestOf_Scenarios(t *testing.T) {
	v := Of(47)
	if v != V1_8 {
		t.Fatalf("Of(47) = %s, want 1.8", v)
	}
	names := v.Names()
	if names[0] != "1.8" || names[len(names)-1] != "1.8.8" {
		t.Errorf("Of(47) names = %v, want 1.8 through 1.8.8", names)
	}
	if v.String() != "1.8-1.8.8" {
		t.Errorf("String() = %q", v.String())
	}

	u := Of(999999)
	if u != Undefined {
		t.Errorf("Of(999999) = %s, want UNDEFINED", u)
	}
	if u.IsSupported() {
		t.Error("Undefined must not be supported")
	}
	if Of(-1) != Undefined {
		t.Error("Of(-1) must be Undefined")
	}
}

func TestOrdering(t *testing.T) {
	all := Default().All()
	for _, a := range all {
		for _, b := range all {
			if a.More(b) != (a.Protocol() > b.Protocol()) {
				t.Errorf("%s.More(%s) inconsistent with protocol numbers", a, b)
			}
			if a.MoreOrEqual(b) != (a.Protocol() >= b.Protocol()) {
				t.Errorf("%s.MoreOrEqual(%s) inconsistent", a, b)
			}
			if a.Less(b) != (a.Protocol() < b.Protocol()) {
				t.Errorf("%s.Less(%s) inconsistent", a, b)
			}
			if a.LessOrEqual(b) != (a.Protocol() <= b.Protocol()) {
				t.Errorf("%s.LessOrEqual(%s) inconsistent", a, b)
			}
		}
	}
}

func TestFromTo(t *testing.T) {
	testCases := []struct {
		desc     string
		v        *Version
		min, max *Version
		want     bool
	}{
		{"inside", V1_12_1, V1_9, V1_13, true},
		{"lower bound", V1_9, V1_9, V1_13, true},
		{"upper bound", V1_13, V1_9, V1_13, true},
		{"below", V1_8, V1_9, V1_13, false},
		{"above", V1_13_1, V1_9, V1_13, false},
		{"undefined", Undefined, Min(), Max(), false},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			if got := tC.v.FromTo(tC.min, tC.max); got != tC.want {
				t.Errorf("%s.FromTo(%s, %s) = %t, want %t", tC.v, tC.min, tC.max, got, tC.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	if Min() != V1_7_2 {
		t.Errorf("Min() = %s", Min())
	}
	if Max() != V1_21_4 {
		t.Errorf("Max() = %s", Max())
	}
	for _, v := range Default().All() {
		if !v.IsSupported() {
			t.Errorf("%s reported unsupported", v)
		}
	}
}

func TestPrev(t *testing.T) {
	all := Default().All()
	if all[0].Prev() != nil {
		t.Errorf("oldest version has prev %s", all[0].Prev())
	}
	for i := 1; i < len(all); i++ {
		if all[i].Prev() != all[i-1] {
			t.Errorf("%s.Prev() = %s, want %s", all[i], all[i].Prev(), all[i-1])
		}
	}
}

func TestNewRegistry_KeepsCatalog(t *testing.T) {
	sub := NewRegistry(V1_8, V1_12)
	if sub.Prev(V1_12) != V1_8 {
		t.Errorf("sub.Prev(1.12) = %s, want 1.8", sub.Prev(V1_12))
	}
	if sub.Prev(V1_8) != nil || sub.Prev(V1_12_2) != nil {
		t.Error("Prev outside the registry must be nil")
	}
	if V1_12.Prev() != V1_11_1 {
		t.Errorf("catalog 1.12.Prev() = %s after building another registry", V1_12.Prev())
	}
	if Default().Prev(V1_12) != V1_11_1 {
		t.Errorf("Default().Prev(1.12) = %s", Default().Prev(V1_12))
	}
}

func TestByName(t *testing.T) {
	if v := Default().ByName("1.16.5"); v != V1_16_4 {
		t.Errorf("ByName(1.16.5) = %s", v)
	}
	if v := Default().ByName("1.14"); v != V1_14 {
		t.Errorf("ByName(1.14) = %s", v)
	}
	if v := Default().ByName("b1.7.3"); v != Undefined {
		t.Errorf("ByName(b1.7.3) = %s", v)
	}
}

func TestNamesIsCopy(t *testing.T) {
	names := V1_8.Names()
	names[0] = "mutated"
	if slices.Contains(V1_8.Names(), "mutated") {
		t.Error("Names exposes internal slice")
	}
}

func TestNewRegistry_PanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewRegistry(newVersion(1, "a"), newVersion(1, "b"))
}
