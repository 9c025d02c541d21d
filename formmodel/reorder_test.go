// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package formmodel

import (
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/formbuilder/models"
)

func in(id, section string, order int) models.Input {
	return models.Input{ID: id, Type: models.InputText, Title: id, Section: section, Order: order}
}

type placement struct {
	ID      string
	Section string
	Order   int
}

func placements(inputs []models.Input) []placement {
	out := make([]placement, 0, len(inputs))
	for _, i := range inputs {
		out = append(out, placement{ID: i.ID, Section: i.Section, Order: i.Order})
	}
	return out
}

func TestReorder_WithinSection(t *testing.T) {
	base := []models.Input{in("a", "s1", 0), in("b", "s1", 1), in("c", "s1", 2)}

	tests := []struct {
		name   string
		active string
		over   string
		want   []placement
	}{
		{
			name:   "first onto last",
			active: "a",
			over:   "c",
			want:   []placement{{"b", "s1", 0}, {"c", "s1", 1}, {"a", "s1", 2}},
		},
		{
			name:   "last onto first",
			active: "c",
			over:   "a",
			want:   []placement{{"c", "s1", 0}, {"a", "s1", 1}, {"b", "s1", 2}},
		},
		{
			name:   "adjacent swap",
			active: "b",
			over:   "c",
			want:   []placement{{"a", "s1", 0}, {"c", "s1", 1}, {"b", "s1", 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reorder(base, tt.active, tt.over)
			if diff := cmp.Diff(tt.want, placements(got)); diff != "" {
				t.Fatalf("reorder mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReorder_AcrossSections(t *testing.T) {
	base := []models.Input{
		in("a", "s1", 0), in("b", "s1", 1), in("c", "s1", 2),
		in("x", "s2", 0), in("y", "s2", 1),
	}

	got := Reorder(base, "b", "x")

	want := []placement{
		{"a", "s1", 0},
		{"c", "s1", 1},
		{"x", "s2", 0},
		{"b", "s2", 1},
		{"y", "s2", 2},
	}
	if diff := cmp.Diff(want, placements(got)); diff != "" {
		t.Fatalf("cross-section reorder mismatch (-want +got):\n%s", diff)
	}
	assertDense(t, got)
}

func TestReorder_OntoLastOfOtherSection(t *testing.T) {
	base := []models.Input{
		in("a", "s1", 0), in("b", "s1", 1),
		in("x", "s2", 0), in("y", "s2", 1),
	}

	got := Reorder(base, "a", "y")

	want := []placement{
		{"b", "s1", 0},
		{"x", "s2", 0},
		{"y", "s2", 1},
		{"a", "s2", 2},
	}
	if diff := cmp.Diff(want, placements(got)); diff != "" {
		t.Fatalf("reorder mismatch (-want +got):\n%s", diff)
	}
}

func TestReorder_NoOps(t *testing.T) {
	base := []models.Input{in("a", "s1", 0), in("b", "s1", 1)}

	tests := []struct {
		name   string
		active string
		over   string
	}{
		{"same item", "a", "a"},
		{"missing over", "a", "nope"},
		{"empty over", "a", ""},
		{"missing active", "nope", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reorder(base, tt.active, tt.over)
			assert.Equal(t, base, got)
		})
	}
}

func TestReorder_DoesNotMutateInput(t *testing.T) {
	base := []models.Input{in("a", "s1", 0), in("b", "s1", 1), in("x", "s2", 0)}
	snapshot := slices.Clone(base)

	_ = Reorder(base, "a", "x")

	if diff := cmp.Diff(snapshot, base); diff != "" {
		t.Fatalf("input slice was modified (-want +got):\n%s", diff)
	}
}

func TestReorder_ClosesGapsLeftByDelete(t *testing.T) {
	form := NewForm("Gaps")
	other, err := AddSection(&form, "Other")
	require.NoError(t, err)

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		input, err := AddInput(&form, InputSpec{Title: title, Section: models.DefaultSectionID})
		require.NoError(t, err)
		ids = append(ids, input.ID)
	}
	p, err := AddInput(&form, InputSpec{Title: "p", Section: other.ID})
	require.NoError(t, err)
	q, err := AddInput(&form, InputSpec{Title: "q", Section: other.ID})
	require.NoError(t, err)

	// Gap in the default section: orders {1, 2}.
	require.True(t, DeleteInput(&form, ids[0]))

	form.Inputs = Reorder(form.Inputs, q.ID, p.ID)

	assertDense(t, form.Inputs)
	defaults := SectionInputs(&form, models.DefaultSectionID)
	require.Len(t, defaults, 2)
	assert.Equal(t, ids[1], defaults[0].ID)
	assert.Equal(t, ids[2], defaults[1].ID)
}

// After any sequence of edits, every section is dense right after a Reorder.
func TestReorder_DenseAfterRandomEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		form := NewForm("Random")
		for i := 0; i < 2; i++ {
			_, err := AddSection(&form, "Section")
			require.NoError(t, err)
		}

		for step := 0; step < 40; step++ {
			switch rng.Intn(3) {
			case 0:
				s := form.Sections[rng.Intn(len(form.Sections))]
				_, _ = AddInput(&form, InputSpec{Title: "field", Section: s.ID})
			case 1:
				if len(form.Inputs) > 0 {
					DeleteInput(&form, form.Inputs[rng.Intn(len(form.Inputs))].ID)
				}
			case 2:
				if len(form.Inputs) > 1 {
					ai := rng.Intn(len(form.Inputs))
					bi := (ai + 1 + rng.Intn(len(form.Inputs)-1)) % len(form.Inputs)
					form.Inputs = Reorder(form.Inputs, form.Inputs[ai].ID, form.Inputs[bi].ID)
					assertDense(t, form.Inputs)
				}
			}
			require.LessOrEqual(t, len(form.Inputs), models.MaxInputs)
		}
	}
}

func assertDense(t *testing.T, inputs []models.Input) {
	t.Helper()
	orders := make(map[string][]int)
	for _, i := range inputs {
		orders[i.Section] = append(orders[i.Section], i.Order)
	}
	for section, got := range orders {
		sort.Ints(got)
		for want, order := range got {
			if order != want {
				t.Fatalf("section %s is not dense: %v", section, got)
			}
		}
	}
}
