package register

import "testing"

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore()
	s.Set(Unnamed, "hello", Charwise)

	c, ok := s.Get(Unnamed)
	if !ok {
		t.Fatal("expected content in unnamed register")
	}
	if c.Text != "hello" || c.Type != Charwise {
		t.Errorf("got %+v", c)
	}
}

func TestStoreEmptyRead(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get("a"); ok {
		t.Error("empty register should read as absent")
	}
}

func TestBlackHole(t *testing.T) {
	s := NewStore()
	s.Set(BlackHole, "gone", Linewise)
	if _, ok := s.Get(BlackHole); ok {
		t.Error("black hole should always read empty")
	}
}

func TestNamedLinewise(t *testing.T) {
	s := NewStore()
	s.Set("a", "line\n", Linewise)

	c, ok := s.Get("a")
	if !ok || c.Type != Linewise {
		t.Errorf("got %+v, %v", c, ok)
	}
}

func TestUppercaseAppends(t *testing.T) {
	s := NewStore()
	s.Set("a", "one", Charwise)
	s.Set("A", " two", Charwise)

	c, ok := s.Get("a")
	if !ok || c.Text != "one two" {
		t.Errorf("got %+v, %v", c, ok)
	}

	// Uppercase reads resolve to the lowercase register.
	c, ok = s.Get("A")
	if !ok || c.Text != "one two" {
		t.Errorf("uppercase read: got %+v, %v", c, ok)
	}
}

func TestUppercaseAppendToEmpty(t *testing.T) {
	s := NewStore()
	s.Set("B", "fresh", Linewise)

	c, ok := s.Get("b")
	if !ok || c.Text != "fresh" || c.Type != Linewise {
		t.Errorf("got %+v, %v", c, ok)
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Set(Unnamed, "x", Charwise)
	s.Clear()
	if _, ok := s.Get(Unnamed); ok {
		t.Error("expected empty store after Clear")
	}
}
