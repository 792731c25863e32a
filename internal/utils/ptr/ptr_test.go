package ptr

import "testing"

func TestTo(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		s := "test"
		p := To(s)
		if p == nil {
			t.Fatal("Expected non-nil pointer")
		}
		if *p != s {
			t.Errorf("Expected %q, got %q", s, *p)
		}
		// Verify it's a different address
		if p == &s {
			t.Error("Expected different address")
		}
	})

	t.Run("custom type", func(t *testing.T) {
		type Tag string
		tag := Tag("bar_setting")
		p := To(tag)
		if p == nil {
			t.Fatal("Expected non-nil pointer")
		}
		if *p != tag {
			t.Errorf("Expected %q, got %q", tag, *p)
		}
	})
}

func TestStrings(t *testing.T) {
	tags := []string{"a", "b"}
	p := Strings(tags)
	if p == nil {
		t.Fatal("Expected non-nil pointer")
	}
	if len(*p) != 2 {
		t.Errorf("Expected 2 elements, got %d", len(*p))
	}
}
