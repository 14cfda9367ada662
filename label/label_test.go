package label

import "testing"

func TestUnion(t *testing.T) {
	a := Of("net")
	b := Of("file")
	u := Union(a, b)
	if !u.Has("net") || !u.Has("file") {
		t.Fatalf("union missing tags: %v", u)
	}
}

func TestUnionWithTop(t *testing.T) {
	if !Union(Top(), Of("net")).IsTop() {
		t.Fatal("union with top should be top")
	}
}

func TestSubset(t *testing.T) {
	if !Subset(Of("net"), Of("net", "file")) {
		t.Fatal("{net} should be subset of {net,file}")
	}
	if Subset(Of("net", "file"), Of("net")) {
		t.Fatal("{net,file} should not be subset of {net}")
	}
}

func TestSubsetTop(t *testing.T) {
	if !Subset(Of("net"), Top()) {
		t.Fatal("anything is a subset of top")
	}
	if Subset(Top(), Of("net")) {
		t.Fatal("top is never a subset of a non-top label")
	}
}

func TestBottomIsIdentityForUnion(t *testing.T) {
	a := Of("net")
	if !Equal(Union(a, Bottom()), a) {
		t.Fatal("bottom should be the union identity")
	}
}

func TestIntersectNarrows(t *testing.T) {
	got := Intersect(Of("net", "file"), Of("file"))
	want := Of("file")
	if !Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestSubstituteSyntheticTag(t *testing.T) {
	summary := Of(SyntheticTag(0), "const")
	args := []Label{Of("net")}
	got := Substitute(summary, args)
	if !got.Has("net") || !got.Has("const") {
		t.Fatalf("substitution missing tags: %v", got)
	}
}

func TestSubstituteTopSummaryStaysTop(t *testing.T) {
	if !Substitute(Top(), []Label{Of("net")}).IsTop() {
		t.Fatal("top summary substitution should remain top")
	}
}

func TestStringFormat(t *testing.T) {
	if Bottom().String() != "⊥" {
		t.Fatal("bottom should render as ⊥")
	}
	if Top().String() != "⊤" {
		t.Fatal("top should render as ⊤")
	}
	if Of("net").String() != "{net}" {
		t.Fatalf("got %s", Of("net").String())
	}
}
