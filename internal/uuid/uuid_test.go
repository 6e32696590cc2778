package uuid

import "testing"

func TestParse(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		want := NewUUID()
		got, err := Parse(want.String())
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		if _, err := Parse("not-a-uuid"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
