package vdom

import "sort"

// KeyedIndex pairs a child key with the child's position in the new list.
type KeyedIndex[K any] struct {
	Key      K
	NewIndex int
}

// LongestIncreasingSubsequence returns the longest subsequence of items
// whose NewIndex values are strictly increasing, in input order.
//
// When several subsequences share the maximum length, the one that keeps the
// earliest input elements is returned: an all-decreasing input yields its
// first element.
func LongestIncreasingSubsequence[K any](items []KeyedIndex[K]) []KeyedIndex[K] {
	n := len(items)
	if n == 0 {
		return nil
	}

	// runs[i] is the length of the longest increasing run that starts at i.
	// Computed right to left; heads[k] holds the largest NewIndex that
	// starts a run of length k+1 among the elements already seen, so heads
	// is strictly decreasing and can be binary searched.
	runs := make([]int, n)
	var heads []int
	for i := n - 1; i >= 0; i-- {
		v := items[i].NewIndex
		k := sort.Search(len(heads), func(j int) bool { return heads[j] <= v })
		runs[i] = k + 1
		if k == len(heads) {
			heads = append(heads, v)
		} else if v > heads[k] {
			heads[k] = v
		}
	}

	longest := len(heads)
	out := make([]KeyedIndex[K], 0, longest)
	need := longest
	last := -1
	for i := 0; i < n && need > 0; i++ {
		if runs[i] == need && (len(out) == 0 || items[i].NewIndex > last) {
			out = append(out, items[i])
			last = items[i].NewIndex
			need--
		}
	}
	return out
}
