package rope

import (
	"testing"
)

// FuzzFromString tests rope creation from arbitrary strings.
func FuzzFromString(f *testing.F) {
	f.Add("", 16)
	f.Add("hello", 16)
	f.Add("hello\nworld", 16)
	f.Add("日本語", 16)
	f.Add("\x00\x01\x02\xff", 64)

	f.Fuzz(func(t *testing.T, s string, leaf int) {
		r := FromString(s, WithMaxLeafSize(leaf%512))

		if int(r.Len()) != len(s) {
			t.Errorf("length mismatch: got %d, want %d", r.Len(), len(s))
		}
		if r.String() != s {
			t.Errorf("content mismatch")
		}
	})
}

// FuzzInsert tests insert operations.
func FuzzInsert(f *testing.F) {
	f.Add("hello", 0, "x")
	f.Add("hello", 5, "x")
	f.Add("hello", 3, "world")
	f.Add("", 0, "test")
	f.Add("日本語", 1, "x")

	f.Fuzz(func(t *testing.T, initial string, offset int, insert string) {
		r := FromString(initial, WithMaxLeafSize(16))

		result, err := r.Insert(ByteOffset(offset), insert)
		if offset < 0 || offset > len(initial) {
			if err == nil {
				t.Errorf("expected error for offset %d on length %d", offset, len(initial))
			}
			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := initial[:offset] + insert + initial[offset:]
		if result.String() != expected {
			t.Errorf("insert mismatch at offset %d", offset)
		}
	})
}

// FuzzErase tests erase operations.
func FuzzErase(f *testing.F) {
	f.Add("hello world", 0, 5)
	f.Add("hello world", 6, 11)
	f.Add("hello world", 5, 1)
	f.Add("日本語", 0, 3)

	f.Fuzz(func(t *testing.T, initial string, pos, n int) {
		r := FromString(initial, WithMaxLeafSize(16))

		result, err := r.Erase(ByteOffset(pos), ByteOffset(n))
		if pos < 0 || pos >= len(initial) {
			if err == nil {
				t.Errorf("expected error for pos %d on length %d", pos, len(initial))
			}
			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		end := pos
		if n > 0 {
			end = pos + min(n, len(initial)-pos)
		}
		if result.String() != initial[:pos]+initial[end:] {
			t.Errorf("erase mismatch: pos %d n %d", pos, n)
		}
	})
}

// FuzzSubstr tests substring extraction.
func FuzzSubstr(f *testing.F) {
	f.Add("hello world", 0, 5)
	f.Add("hello world", 6, 100)
	f.Add("hello", 5, 1)

	f.Fuzz(func(t *testing.T, s string, pos, n int) {
		r := FromString(s, WithMaxLeafSize(16))
		got := r.Substr(ByteOffset(pos), ByteOffset(n))

		want := ""
		if pos >= 0 && pos < len(s) && n > 0 {
			want = s[pos : pos+min(n, len(s)-pos)]
		}
		if got != want {
			t.Errorf("Substr(%d, %d) = %q, want %q", pos, n, got, want)
		}
	})
}

// FuzzMultipleOperations applies an edit script and checks it against a
// plain string model.
func FuzzMultipleOperations(f *testing.F) {
	f.Add("hello world", []byte{0, 3, 1, 5, 2, 0})
	f.Add("", []byte{0, 0, 0, 0})

	f.Fuzz(func(t *testing.T, initial string, script []byte) {
		r := FromString(initial, WithMaxLeafSize(16))
		model := initial

		for i := 0; i+1 < len(script); i += 2 {
			pos := int(script[i+1])
			switch script[i] % 3 {
			case 0:
				if pos > len(model) {
					pos = len(model)
				}
				var err error
				r, err = r.Insert(ByteOffset(pos), "ab")
				if err != nil {
					t.Fatal(err)
				}
				model = model[:pos] + "ab" + model[pos:]
			case 1:
				if len(model) == 0 {
					continue
				}
				pos %= len(model)
				var err error
				r, err = r.Erase(ByteOffset(pos), 3)
				if err != nil {
					t.Fatal(err)
				}
				model = model[:pos] + model[min(pos+3, len(model)):]
			case 2:
				r = r.Rebalance()
			}

			if r.String() != model {
				t.Fatalf("step %d: got %q, want %q", i/2, r.String(), model)
			}
		}
	})
}
