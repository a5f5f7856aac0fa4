package catalog

import (
	"reflect"
	"testing"
)

func TestProvideAndLookup(t *testing.T) {
	c := New[int]()
	c.Provide("b", 2)
	c.Provide("a", 1)

	if v, ok := c.Lookup("a"); !ok || v != 1 {
		t.Errorf("expected a=1, got %d (found=%v)", v, ok)
	}
	if _, ok := c.Lookup("missing"); ok {
		t.Error("expected missing id to be absent")
	}
	if got := c.IDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("unexpected ids: %v", got)
	}
}

func TestProvideTwicePanics(t *testing.T) {
	c := New[string]()
	c.Provide("ping.execute", "first")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate id")
		}
	}()
	c.Provide("ping.execute", "second")
}
