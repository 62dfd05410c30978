package paintd

import (
	"testing"

	"github.com/gogpu/paintd/text"
)

func TestRegistryIDsIncreaseAndNeverRecycle(t *testing.T) {
	r := newRegistry()
	comp := NewMemCompositor()
	fonts := text.NewFontContext(nil)

	var ids []CanvasID
	for i := 0; i < 5; i++ {
		c := newCanvasContext(NewSoftwareBackend(), fonts, comp, Size{Width: 2, Height: 2})
		ids = append(ids, r.add(c))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids not strictly increasing: %v", ids)
		}
	}

	r.remove(ids[2])
	c := newCanvasContext(NewSoftwareBackend(), fonts, comp, Size{Width: 2, Height: 2})
	if id := r.add(c); id == ids[2] {
		t.Errorf("id %d recycled after close", id)
	}
}

func TestRegistryResolveUnknownPanics(t *testing.T) {
	r := newRegistry()

	defer func() {
		if recover() == nil {
			t.Error("resolve of unknown id did not panic")
		}
	}()
	r.resolve(CanvasID(42))
}

func TestRegistryResolveClosedPanics(t *testing.T) {
	r := newRegistry()
	c := newCanvasContext(NewSoftwareBackend(), text.NewFontContext(nil), NewMemCompositor(), Size{Width: 2, Height: 2})
	id := r.add(c)
	r.remove(id)

	defer func() {
		if recover() == nil {
			t.Error("resolve of closed id did not panic")
		}
	}()
	r.resolve(id)
}

func TestRegistryRemoveDeletesCompositorImage(t *testing.T) {
	r := newRegistry()
	comp := NewMemCompositor()
	c := newCanvasContext(NewSoftwareBackend(), text.NewFontContext(nil), comp, Size{Width: 2, Height: 2})
	id := r.add(c)
	key := c.ImageKey()

	if comp.Image(key) == nil {
		t.Fatal("image not registered at creation")
	}
	r.remove(id)
	if comp.Image(key) != nil {
		t.Error("image still registered after remove")
	}
}
