package rope

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

// generateText creates a string of about the given size with realistic content.
func generateText(size int) string {
	var sb strings.Builder
	sb.Grow(size)

	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog", "hello", "world"}
	lineLen := 0

	for sb.Len() < size {
		word := words[rand.Intn(len(words))]
		if sb.Len()+len(word)+1 > size {
			break
		}

		if sb.Len() > 0 {
			if lineLen > 60 {
				sb.WriteByte('\n')
				lineLen = 0
			} else {
				sb.WriteByte(' ')
				lineLen++
			}
		}

		sb.WriteString(word)
		lineLen += len(word)
	}

	return sb.String()
}

var benchSizes = []int{1000, 10000, 100000}

func BenchmarkFromString(b *testing.B) {
	for _, size := range benchSizes {
		text := generateText(size)

		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				_ = FromString(text)
			}
		})
	}
}

func BenchmarkInsertStart(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(generateText(size))

		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = r.Insert(0, "x")
			}
		})
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(generateText(size))
		mid := r.Len() / 2

		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = r.Insert(mid, "x")
			}
		})
	}
}

func BenchmarkInsertRandom(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(generateText(size))

		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				offset := ByteOffset(rand.Int63n(int64(r.Len()) + 1))
				_, _ = r.Insert(offset, "x")
			}
		})
	}
}

// BenchmarkTyping measures a long run of single-byte inserts at a moving
// cursor, the access pattern that degrades an unbalanced tree.
func BenchmarkTyping(b *testing.B) {
	for _, rebalance := range []bool{true, false} {
		b.Run(fmt.Sprintf("rebalance=%t", rebalance), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				r := New(WithRebalance(rebalance))
				for j := 0; j < 2000; j++ {
					r, _ = r.Insert(r.Len()/2, "x")
				}
			}
		})
	}
}

func BenchmarkEraseMiddle(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(generateText(size))
		mid := r.Len() / 2

		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = r.Erase(mid, 100)
			}
		})
	}
}

func BenchmarkAt(b *testing.B) {
	for _, size := range append(benchSizes, 1000000) {
		r := FromString(generateText(size))

		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = r.At(ByteOffset(rand.Int63n(int64(r.Len()))))
			}
		})
	}
}

func BenchmarkSubstr(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(generateText(size))

		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				start := ByteOffset(rand.Int63n(int64(r.Len())))
				_ = r.Substr(start, 200)
			}
		})
	}
}

func BenchmarkString(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(generateText(size))

		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.SetBytes(int64(r.Len()))
			for i := 0; i < b.N; i++ {
				_ = r.String()
			}
		})
	}
}
