// SPDX-License-Identifier: MPL-2.0

package resource

import (
	"errors"
	"testing"

	"packmill/pkg/version"
)

func TestNew_Rendering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base string
		opts []Option
		want string
	}{
		{
			name: "namespace only renders back unchanged",
			base: "namespace",
			want: "namespace",
		},
		{
			name: "namespace with single-segment path",
			base: "something:else",
			want: "something:else",
		},
		{
			name: "namespace with multi-segment path",
			base: "namespace:another/path",
			want: "namespace:another/path",
		},
		{
			name: "private shorthand on sole segment",
			base: "namespace:_resource",
			want: "namespace:" + PrivatePath + "/resource",
		},
		{
			name: "private shorthand on last of several segments",
			base: "namespace:path/_resource",
			want: "namespace:" + PrivatePath + "/path/resource",
		},
		{
			name: "bare underscore marks the private root itself",
			base: "namespace:_",
			want: "namespace:" + PrivatePath,
		},
		{
			name: "external skips the private rewrite",
			base: "external_pack:api/_test",
			opts: []Option{WithExternal(true)},
			want: "external_pack:api/_test",
		},
		{
			name: "external allows dashes and dots",
			base: "some-pack:v1.2/thing",
			opts: []Option{WithExternal(true)},
			want: "some-pack:v1.2/thing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loc, err := New(tt.base, tt.opts...)
			if err != nil {
				t.Fatalf("New(%q) returned error: %v", tt.base, err)
			}
			if got := loc.String(); got != tt.want {
				t.Errorf("New(%q).String() = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestNew_InvalidNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		base             string
		opts             []Option
		wantUnconvention bool
	}{
		{
			name:             "uppercase namespace",
			base:             "Bad_Name",
			wantUnconvention: false,
		},
		{
			name:             "uppercase segment fails the permissive tier",
			base:             "ns:Has-Dash",
			wantUnconvention: false,
		},
		{
			name:             "dash in lowercase segment is unconventional",
			base:             "ns:has-dash",
			wantUnconvention: true,
		},
		{
			name:             "dot in namespace is unconventional",
			base:             "rx.playerdb",
			wantUnconvention: true,
		},
		{
			name:             "empty path after colon",
			base:             "ns:",
			wantUnconvention: false,
		},
		{
			name:             "empty segment from doubled slash",
			base:             "ns:a//b",
			wantUnconvention: false,
		},
		{
			name:             "doubled underscore is unconventional",
			base:             "ns:a__b",
			wantUnconvention: true,
		},
		{
			name:             "space fails even when external",
			base:             "bad name",
			opts:             []Option{WithExternal(true)},
			wantUnconvention: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.base, tt.opts...)
			if err == nil {
				t.Fatalf("New(%q) succeeded, want InvalidNameError", tt.base)
			}
			if !errors.Is(err, ErrInvalidName) {
				t.Fatalf("New(%q) error = %v, want ErrInvalidName", tt.base, err)
			}
			var nameErr *InvalidNameError
			if !errors.As(err, &nameErr) {
				t.Fatalf("New(%q) error = %T, want *InvalidNameError", tt.base, err)
			}
			if nameErr.Unconventional != tt.wantUnconvention {
				t.Errorf("New(%q) Unconventional = %v, want %v",
					tt.base, nameErr.Unconventional, tt.wantUnconvention)
			}
		})
	}
}

func TestNew_ExternalRelaxesConvention(t *testing.T) {
	t.Parallel()

	// Dash is permissive-grammar-valid but not conventional: rejected by
	// default, accepted with the external flag.
	if _, err := New("ns:has-dash"); err == nil {
		t.Error("New(\"ns:has-dash\") succeeded, want error")
	}
	loc, err := New("ns:has-dash", WithExternal(true))
	if err != nil {
		t.Fatalf("New external returned error: %v", err)
	}
	if got := loc.String(); got != "ns:has-dash" {
		t.Errorf("String() = %q, want %q", got, "ns:has-dash")
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   string
		opts   []Option
		suffix []string
		want   string
	}{
		{
			name:   "extend bare namespace",
			base:   "namespace",
			suffix: []string{"resource"},
			want:   "namespace:resource",
		},
		{
			name:   "extend twice",
			base:   "namespace",
			suffix: []string{"path", "subpath", "resource"},
			want:   "namespace:path/subpath/resource",
		},
		{
			name:   "extend existing path",
			base:   "namespace:another/path",
			suffix: []string{"another_resource"},
			want:   "namespace:another/path/another_resource",
		},
		{
			name:   "suffix may carry several segments",
			base:   "something:else",
			suffix: []string{"directory/resource"},
			want:   "something:else/directory/resource",
		},
		{
			name:   "private shorthand from bare namespace",
			base:   "ns",
			suffix: []string{"_thing"},
			want:   "ns:zz/do_not_run_or_packs_may_break/thing",
		},
		{
			name:   "private shorthand from existing path",
			base:   "ns:a",
			suffix: []string{"_thing"},
			want:   "ns:" + PrivatePath + "/a/thing",
		},
		{
			name:   "private shorthand inside suffix",
			base:   "namespace",
			suffix: []string{"path/_resource"},
			want:   "namespace:" + PrivatePath + "/path/resource",
		},
		{
			name:   "external keeps underscore and skips rewrite",
			base:   "ns:api",
			opts:   []Option{WithExternal(true)},
			suffix: []string{"_test"},
			want:   "ns:api/_test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loc, err := New(tt.base, tt.opts...)
			if err != nil {
				t.Fatalf("New(%q) returned error: %v", tt.base, err)
			}
			for _, s := range tt.suffix {
				loc, err = loc.Join(s)
				if err != nil {
					t.Fatalf("Join(%q) returned error: %v", s, err)
				}
			}
			if got := loc.String(); got != tt.want {
				t.Errorf("rendered %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJoin_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := MustNew("namespace:path")
	child, err := base.Join("subpath")
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if got := base.String(); got != "namespace:path" {
		t.Errorf("receiver changed after Join: %q", got)
	}
	if got := child.String(); got != "namespace:path/subpath" {
		t.Errorf("child = %q, want %q", got, "namespace:path/subpath")
	}
}

func TestJoin_MetadataNotPropagated(t *testing.T) {
	t.Parallel()

	base := MustNew("ns:path",
		WithTitle("My Pack"),
		WithVersion(version.MustParse("1.2.3")))

	child, err := base.Join("thing")
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if child.Title() != "" {
		t.Errorf("child title = %q, want empty", child.Title())
	}
	if child.Version() != nil {
		t.Errorf("child version = %v, want nil", child.Version())
	}
}

func TestJoin_ExternalPropagated(t *testing.T) {
	t.Parallel()

	base := MustNew("ext:has-dash", WithExternal(true))
	child, err := base.Join("sub-dir")
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if !child.External() {
		t.Error("child lost external flag")
	}
}

func TestJoin_StalePrivateMarkerRejected(t *testing.T) {
	t.Parallel()

	// Privateness must be re-declared at every derivation step. Extending a
	// private-derived location with a plain segment leaves the old "_" marker
	// mid-path, where it fails the conventional check.
	private, err := MustNew("ns:a").Join("_b")
	if err != nil {
		t.Fatalf("Join(\"_b\") returned error: %v", err)
	}
	if got := private.String(); got != "ns:"+PrivatePath+"/a/b" {
		t.Fatalf("private location = %q", got)
	}
	if _, err := private.Join("c"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Join(\"c\") error = %v, want ErrInvalidName", err)
	}
}

func TestEqualityAndHashKey(t *testing.T) {
	t.Parallel()

	a := MustNew("a:b")
	b := MustNew("a:b")
	titled := MustNew("a:b", WithTitle("X"))
	other := MustNew("a:c")

	if !a.Equal(b) {
		t.Error("identical locations not equal")
	}
	if !a.Equal(titled) {
		t.Error("title should not participate in equality")
	}
	if a.Equal(other) {
		t.Error("distinct paths compare equal")
	}

	// String() is the map key; equal locations must collide.
	seen := map[string]int{}
	for _, loc := range []Location{a, b, titled, other} {
		seen[loc.String()]++
	}
	if len(seen) != 2 {
		t.Errorf("map keys = %v, want 2 distinct", seen)
	}
}

func TestSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{
			name: "namespace only",
			base: "namespace",
			key:  "thing_1",
			want: "namespace.thing_1",
		},
		{
			name: "with path",
			base: "namespace:path",
			key:  "thing_2",
			want: "namespace.path.thing_2",
		},
		{
			name: "private segments appear in projection",
			base: "ns:_impl",
			key:  "score",
			want: "ns.zz.do_not_run_or_packs_may_break.impl.score",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := MustNew(tt.base).Symbol(tt.key)
			if err != nil {
				t.Fatalf("Symbol(%q) returned error: %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Symbol(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSymbol_UnconventionalKey(t *testing.T) {
	t.Parallel()

	loc := MustNew("ns:path")
	for _, key := range []string{"Has.Dot", "Upper", "has-dash", "_private", ""} {
		if _, err := loc.Symbol(key); !errors.Is(err, ErrUnknownSymbol) {
			t.Errorf("Symbol(%q) error = %v, want ErrUnknownSymbol", key, err)
		}
	}
}

func TestField(t *testing.T) {
	t.Parallel()

	loc := MustNew("something:else/_impl",
		WithTitle("Something"),
		WithVersion(version.MustParse("2.0.1")))

	if got, ok := loc.Field("namespace"); !ok || got != "something" {
		t.Errorf("Field(namespace) = %v, %v", got, ok)
	}
	if got, ok := loc.Field("abstract_path"); !ok || got != "else/_impl" {
		t.Errorf("Field(abstract_path) = %v, %v", got, ok)
	}
	if got, ok := loc.Field("path"); !ok || got != PrivatePath+"/else/impl" {
		t.Errorf("Field(path) = %v, %v", got, ok)
	}
	if got, ok := loc.Field("title"); !ok || got != "Something" {
		t.Errorf("Field(title) = %v, %v", got, ok)
	}
	if got, ok := loc.Field("external"); !ok || got != false {
		t.Errorf("Field(external) = %v, %v", got, ok)
	}
	if v, ok := loc.Field("version"); !ok {
		t.Error("Field(version) absent")
	} else if v.(*version.Version).String() != "2.0.1" {
		t.Errorf("Field(version) = %v", v)
	}
	if segs, ok := loc.Field("path_segments"); !ok {
		t.Error("Field(path_segments) absent")
	} else if got := segs.([]string); len(got) != 4 || got[len(got)-1] != "impl" {
		t.Errorf("Field(path_segments) = %v", got)
	}

	bare := MustNew("ns")
	if _, ok := bare.Field("abstract_path"); ok {
		t.Error("Field(abstract_path) present on pathless location")
	}
	if _, ok := bare.Field("path"); ok {
		t.Error("Field(path) present on pathless location")
	}
	if _, ok := bare.Field("version"); ok {
		t.Error("Field(version) present without version")
	}
	if _, ok := bare.Field("bogus"); ok {
		t.Error("Field(bogus) present")
	}
}

func TestSegments_ReturnsCopy(t *testing.T) {
	t.Parallel()

	loc := MustNew("ns:a/b")
	segs := loc.Segments()
	segs[0] = "mutated"
	if got := loc.String(); got != "ns:a/b" {
		t.Errorf("location changed through Segments copy: %q", got)
	}
}
