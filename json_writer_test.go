package collection

import "testing"

func TestJSONObjectWriter(t *testing.T) {
	var w jsonObjectWriter
	w.Append("command", "buy")
	w.Append("quantity", 3)
	w.Optional("adjusted", false) // zero value, omitted
	w.Optional("note", "backfill")

	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	want := `{"command":"buy","quantity":3,"note":"backfill"}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestJSONObjectWriter_EmbedFrom(t *testing.T) {
	type inner struct {
		ID int `json:"id"`
	}
	var w jsonObjectWriter
	w.EmbedFrom(inner{ID: 7})
	w.Append("price", 99.5)

	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	if string(got) != `{"id":7,"price":99.5}` {
		t.Errorf("MarshalJSON() = %s", got)
	}
}

func TestJSONObjectWriter_Empty(t *testing.T) {
	var w jsonObjectWriter
	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("MarshalJSON() = %s, want {}", got)
	}
}
