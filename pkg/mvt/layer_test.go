package mvt

import "testing"

func TestLayerKeyIDInternsAndReuses(t *testing.T) {
	l := newLayer("test", DefaultExtent)
	a := l.keyID("name")
	b := l.keyID("height")
	c := l.keyID("name")

	if a != 0 || b != 1 {
		t.Errorf("expected sequential ids 0, 1; got %d, %d", a, b)
	}
	if c != a {
		t.Errorf("expected repeat key to reuse id %d, got %d", a, c)
	}
	if got := l.Keys(); len(got) != 2 || got[0] != "name" || got[1] != "height" {
		t.Errorf("expected insertion-ordered keys [name height], got %v", got)
	}
}

func TestLayerValueIDDistinguishesKindAndPayload(t *testing.T) {
	l := newLayer("test", DefaultExtent)
	trueID := l.valueID(BoolValue(true))
	oneID := l.valueID(SintValue(1))
	trueAgainID := l.valueID(BoolValue(true))

	if trueID == oneID {
		t.Error("expected bool true and int64 1 to intern to distinct ids")
	}
	if trueAgainID != trueID {
		t.Error("expected repeat value to reuse its id")
	}
	if got := l.Values(); len(got) != 2 {
		t.Errorf("expected 2 distinct interned values, got %d", len(got))
	}
}
