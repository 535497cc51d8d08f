package dom

import (
	"strings"
	"testing"
)

const sample = `<div class="a root" data-id="0">
    <span class="name">root</span>
    <div class="kids">
        <div class="a" data-id="1">
            <span class="name first">one</span>
        </div>
        <div class="a" data-id="2">
            <span class="name">two &amp; more</span>
        </div>
    </div>
</div>
`

func newSample(t *testing.T) *Document {
	t.Helper()
	d := NewDocument("host")
	if err := d.SetContent(sample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

func TestDocument_FindFirstInOrder(t *testing.T) {
	d := newSample(t)
	el := d.Find("name")
	if el == nil {
		t.Fatal("expected a match")
	}
	if got := el.(*Element).Text(); got != "root" {
		t.Errorf("expected first label %q, got %q", "root", got)
	}
	if d.Find("missing") != nil {
		t.Error("expected nil for missing class")
	}
}

func TestDocument_FindAll(t *testing.T) {
	d := newSample(t)
	all := d.FindAll("a")
	if len(all) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(all))
	}
	if got := all[2].Text(); got != "two & more" {
		t.Errorf("expected decoded text, got %q", got)
	}
}

func TestDocument_Part(t *testing.T) {
	d := newSample(t)

	label, ok := d.Part(2, "name")
	if !ok {
		t.Fatal("expected label for node 2")
	}
	if !label.HasClass("name") || label.Text() != "two & more" {
		t.Errorf("unexpected label %v %q", label.Classes(), label.Text())
	}

	container, ok := d.Part(1, "a")
	if !ok {
		t.Fatal("expected container for node 1")
	}
	if v, _ := container.Attr("data-id"); v != "1" {
		t.Errorf("expected container of node 1, got data-id=%q", v)
	}

	if _, ok := d.Part(1, "kids"); ok {
		t.Error("expected no match for a part that is not a direct child")
	}
	if _, ok := d.Part(42, "name"); ok {
		t.Error("expected no match for unknown id")
	}
}

func TestDocument_SetContentReplaces(t *testing.T) {
	d := newSample(t)
	if err := d.SetContent(`<p class="only">x</p>`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := d.InnerHTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `<p class="only">x</p>` {
		t.Errorf("expected replaced content, got %q", got)
	}

	outer, err := d.OuterHTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outer != `<div id="host"><p class="only">x</p></div>` {
		t.Errorf("unexpected outer html %q", outer)
	}
}

func TestElement_ClassOps(t *testing.T) {
	d := newSample(t)
	el, _ := d.Part(1, "name")

	el.AddClass("selected")
	el.AddClass("selected")
	if got := strings.Join(el.Classes(), " "); got != "name first selected" {
		t.Errorf("expected single added class, got %q", got)
	}

	el.RemoveClass("first")
	if got := strings.Join(el.Classes(), " "); got != "name selected" {
		t.Errorf("expected class removed in place, got %q", got)
	}
	el.RemoveClass("absent")
	if !el.HasClass("name") || el.HasClass("first") {
		t.Errorf("unexpected classes %v", el.Classes())
	}
}

func TestElement_AttrOps(t *testing.T) {
	d := newSample(t)
	el, _ := d.Part(1, "a")

	el.SetAttr("data-folded", "true")
	if v, ok := el.Attr("data-folded"); !ok || v != "true" {
		t.Errorf("expected attribute set, got %q ok=%v", v, ok)
	}
	el.SetAttr("data-folded", "false")
	if v, _ := el.Attr("data-folded"); v != "false" {
		t.Errorf("expected attribute overwritten, got %q", v)
	}
	el.RemoveAttr("data-folded")
	if _, ok := el.Attr("data-folded"); ok {
		t.Error("expected attribute removed")
	}
}

func TestElement_Parent(t *testing.T) {
	d := newSample(t)
	label, _ := d.Part(2, "name")

	p := label.Parent()
	if p == nil {
		t.Fatal("expected parent")
	}
	if v, _ := p.Attr("data-id"); v != "2" {
		t.Errorf("expected parent of node 2, got %q", v)
	}
	if d.Container().Parent() != nil {
		t.Error("expected detached container to have no parent")
	}
}

func TestDocument_SetContentDeepNesting(t *testing.T) {
	const depth = 1500
	markup := strings.Repeat(`<div class="level">`, depth) + `<span class="leaf">x</span>` + strings.Repeat(`</div>`, depth)
	d := NewDocument("")
	if err := d.SetContent(markup); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(d.FindAll("level")); n != depth {
		t.Fatalf("expected %d nested elements, got %d", depth, n)
	}
	got, err := d.InnerHTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != markup {
		t.Error("expected serialized content to match the installed markup")
	}
}

func TestDocument_SetContentRecovers(t *testing.T) {
	d := NewDocument("")
	if err := d.SetContent(`<div class="a"><br><p class="b">x</span></p><!--c--><div class="c">`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := d.InnerHTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div class="a"><br/><p class="b">x</p><!--c--><div class="c"></div></div>`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
