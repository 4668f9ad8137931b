package label

import "testing"

func TestOneHot(t *testing.T) {
	var encoded, err = OneHot([]string{"Red", "Black", "Green", "White"})
	if err != nil {
		t.Fatal(err)
	}
	for row := 0; row < encoded.Rows; row++ {
		for col := 0; col < encoded.Cols; col++ {
			var want float32
			if row == col {
				want = 1
			}
			if encoded.At(row, col) != want {
				t.Errorf("encoded[%v][%v] = %v, want %v", row, col, encoded.At(row, col), want)
			}
		}
	}
}

func TestOneHotUnknownLabel(t *testing.T) {
	var _, err = OneHot([]string{"Red", "Purple"})
	if err == nil {
		t.Fatal("label outside the vocabulary should fail")
	}
}

func TestIndexRoundTrip(t *testing.T) {
	for i, name := range Vocabulary {
		var index, ok = Index(name)
		if !ok || index != i {
			t.Errorf("Index(%q) = %v, %v; want %v, true", name, index, ok, i)
		}
		if Name(i) != name {
			t.Errorf("Name(%v) = %q, want %q", i, Name(i), name)
		}
	}
	if _, ok := Index("Purple"); ok {
		t.Error("Purple should not be in the vocabulary")
	}
}
