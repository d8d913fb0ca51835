package vdom

import (
	"fmt"
	"testing"
)

func BenchmarkElementCreation(b *testing.B) {
	b.Run("simple div", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Div(Class("card"))
		}
	})

	b.Run("with event handler", func(b *testing.B) {
		handler := func() {}
		for i := 0; i < b.N; i++ {
			_ = Button(OnClick(handler), Text("Click"))
		}
	})
}

func BenchmarkDiffSameTree(b *testing.B) {
	prev := createKeyedList(100)
	next := createKeyedList(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Diff(prev, next)
	}
}

func BenchmarkDiffUnkeyedChildren(b *testing.B) {
	prev := createUnkeyedList(100)
	next := createUnkeyedList(120)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Diff(prev, next)
	}
}

func BenchmarkDiffKeyedReorder(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("%d children", n), func(b *testing.B) {
			prev := createKeyedList(n)
			next := createReversedKeyedList(n)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = Diff(prev, next)
			}
		})
	}
}

func BenchmarkLongestIncreasingSubsequenceInterleaved(b *testing.B) {
	items := make([]KeyedIndex[int], 1000)
	for i := range items {
		// Interleaved runs so the result is neither trivial nor empty.
		items[i] = KeyedIndex[int]{Key: i, NewIndex: (i * 7) % len(items)}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = LongestIncreasingSubsequence(items)
	}
}

func createKeyedList(n int) *VNode {
	items := make([]any, n)
	for i := 0; i < n; i++ {
		items[i] = Li(Key(fmt.Sprintf("item-%d", i)), Text(fmt.Sprintf("Item %d", i)))
	}
	return Ul(items...)
}

func createReversedKeyedList(n int) *VNode {
	items := make([]any, n)
	for i := 0; i < n; i++ {
		j := n - 1 - i
		items[i] = Li(Key(fmt.Sprintf("item-%d", j)), Text(fmt.Sprintf("Item %d", j)))
	}
	return Ul(items...)
}

func createUnkeyedList(n int) *VNode {
	items := make([]any, n)
	for i := 0; i < n; i++ {
		items[i] = Li(Text(fmt.Sprintf("Item %d", i)))
	}
	return Ul(items...)
}
