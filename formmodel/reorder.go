// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package formmodel

import (
	"slices"
	"sort"

	"github.com/danielhkuo/formbuilder/models"
)

// Reorder applies a drag-end gesture: activeID was dropped onto overID.
//
// The active input takes the over input's index in the full sequence and,
// when the two differ, the over input's section. The active input's section
// is then renumbered 0..k-1 in sequence order. Every other section keeps its
// display order but is compacted to 0..k-1, which closes gaps left by
// DeleteInput and by the input that moved out.
//
// The input slice is never modified. An unknown id or activeID == overID
// returns an unchanged copy.
func Reorder(inputs []models.Input, activeID, overID string) []models.Input {
	out := slices.Clone(inputs)
	if overID == "" || activeID == overID {
		return out
	}

	activeIdx := indexOfInput(out, activeID)
	overIdx := indexOfInput(out, overID)
	if activeIdx == -1 || overIdx == -1 {
		return out
	}

	if out[activeIdx].Section != out[overIdx].Section {
		out[activeIdx].Section = out[overIdx].Section
	}
	target := out[activeIdx].Section

	out = arrayMove(out, activeIdx, overIdx)

	n := 0
	for i := range out {
		if out[i].Section == target {
			out[i].Order = n
			n++
		}
	}
	compactSections(out, target)

	return out
}

// arrayMove removes the item at from and reinserts it at to.
func arrayMove(items []models.Input, from, to int) []models.Input {
	item := items[from]
	items = slices.Delete(items, from, from+1)
	return slices.Insert(items, to, item)
}

// compactSections renumbers every section except skip to 0..k-1 without
// changing its relative display order. Sequence positions are not touched.
func compactSections(items []models.Input, skip string) {
	bySection := make(map[string][]int)
	for i, in := range items {
		if in.Section == skip {
			continue
		}
		bySection[in.Section] = append(bySection[in.Section], i)
	}

	for _, idxs := range bySection {
		sort.SliceStable(idxs, func(a, b int) bool {
			return items[idxs[a]].Order < items[idxs[b]].Order
		})
		for order, idx := range idxs {
			items[idx].Order = order
		}
	}
}
