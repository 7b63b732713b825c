package fluent

import (
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/gostdlib/fluent/values/immutable"

	"github.com/kylelemons/godebug/pretty"
)

func isEven(i int) bool { return i%2 == 0 }

func times10(i int) int { return i * 10 }

// list materializes c and fails the test on error.
func list[T any](t *testing.T, c Chain[T]) []T {
	t.Helper()
	l, err := c.ToList()
	if err != nil {
		t.Fatalf("ToList(): got err == %s, want err == nil", err)
	}
	return l.Copy()
}

func TestSteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		chain Chain[int]
		want  []int
	}{
		{
			name:  "No steps",
			chain: Of(1, 2, 3),
			want:  []int{1, 2, 3},
		},
		{
			name:  "Empty",
			chain: Empty[int]().Filter(isEven),
			want:  []int{},
		},
		{
			name:  "Zero value",
			chain: Chain[int]{},
			want:  []int{},
		},
		{
			name:  "Filter then map",
			chain: Map(Of(1, 2, 3, 4).Filter(isEven), times10),
			want:  []int{20, 40},
		},
		{
			name:  "Map then filter",
			chain: Map(Of(1, 2, 3, 4), times10).Filter(func(i int) bool { return i > 25 }),
			want:  []int{30, 40},
		},
		{
			name:  "Distinct keeps first occurrence",
			chain: Distinct(Of(1, 2, 2, 3, 1)),
			want:  []int{1, 2, 3},
		},
		{
			name:  "DistinctBy",
			chain: DistinctBy(Of(1, 12, 3, 22, 5), func(i int) int { return i % 10 }),
			want:  []int{1, 12, 3, 5},
		},
		{
			name:  "SortedAsc",
			chain: SortedAsc(Of(3, 1, 2)),
			want:  []int{1, 2, 3},
		},
		{
			name:  "Sorted descending",
			chain: Of(3, 1, 2).Sorted(func(a, b int) int { return b - a }),
			want:  []int{3, 2, 1},
		},
		{
			name:  "Limit",
			chain: Of(1, 2, 3).Limit(2),
			want:  []int{1, 2},
		},
		{
			name:  "Limit past end",
			chain: Of(1, 2, 3).Limit(10),
			want:  []int{1, 2, 3},
		},
		{
			name:  "Negative limit",
			chain: Of(1, 2, 3).Limit(-1),
			want:  []int{},
		},
		{
			name:  "Skip",
			chain: Of(1, 2, 3).Skip(1),
			want:  []int{2, 3},
		},
		{
			name:  "Skip past end",
			chain: Of(1, 2, 3).Skip(5),
			want:  []int{},
		},
		{
			name:  "Negative skip",
			chain: Of(1, 2, 3).Skip(-2),
			want:  []int{1, 2, 3},
		},
		{
			name:  "FlatMap",
			chain: FlatMap(Of(1, 2, 3), func(i int) []int { return slices.Repeat([]int{i}, i) }),
			want:  []int{1, 2, 2, 3, 3, 3},
		},
		{
			name:  "With",
			chain: Of(1, 2).With(3, 4),
			want:  []int{1, 2, 3, 4},
		},
		{
			name:  "Concat",
			chain: Of(1, 2).Concat(Of(3, 4, 5).Filter(isEven)),
			want:  []int{1, 2, 4},
		},
		{
			name:  "Without",
			chain: Without(Of(1, 2, 3, 2, 1), 2, 3),
			want:  []int{1, 1},
		},
		{
			name:  "Stateful step between stateless steps",
			chain: Map(SortedAsc(Of(4, 1, 3, 2).Filter(func(i int) bool { return i > 1 })), times10).Limit(2),
			want:  []int{20, 30},
		},
	}

	for _, test := range tests {
		got := list(t, test.chain)
		if diff := pretty.Compare(test.want, got); diff != "" {
			t.Errorf("TestSteps(%s): -want/+got:\n%s", test.name, diff)
		}
	}
}

// TestMapChangesType checks that steps after Map() see the new values.
func TestMapChangesType(t *testing.T) {
	t.Parallel()

	c := Map(Of(1, 22, 333), func(i int) string { return strings.Repeat("x", i%10) })
	c = c.Filter(func(s string) bool { return len(s) > 1 })

	got := list(t, c)
	want := []string{"xx", "xxx"}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("TestMapChangesType: -want/+got:\n%s", diff)
	}
}

type pair struct {
	Key   int
	Label string
}

func TestSortedIsStable(t *testing.T) {
	t.Parallel()

	c := Of(pair{2, "a"}, pair{1, "b"}, pair{2, "c"}, pair{1, "d"}).
		Sorted(func(a, b pair) int { return a.Key - b.Key })

	got := list(t, c)
	want := []pair{{1, "b"}, {1, "d"}, {2, "a"}, {2, "c"}}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("TestSortedIsStable: -want/+got:\n%s", diff)
	}
}

func TestNulls(t *testing.T) {
	t.Parallel()

	a, b := 1, 2

	got := list(t, Of(&a, nil, &b).DroppingNulls())
	if len(got) != 2 || got[0] != &a || got[1] != &b {
		t.Errorf("TestNulls(DroppingNulls): got %v, want [%p %p]", got, &a, &b)
	}

	got = list(t, Of(&a, &b).RejectingNulls())
	if len(got) != 2 {
		t.Errorf("TestNulls(RejectingNulls no nil): got %d elements, want 2", len(got))
	}

	var m map[string]int
	ms := list(t, Of(m, map[string]int{"a": 1}).DroppingNulls())
	if len(ms) != 1 {
		t.Errorf("TestNulls(nil map): got %d elements, want 1", len(ms))
	}

	// Values that cannot be nil are never dropped.
	ints := list(t, Of(0, 1).DroppingNulls())
	if diff := pretty.Compare([]int{0, 1}, ints); diff != "" {
		t.Errorf("TestNulls(ints): -want/+got:\n%s", diff)
	}
}

func TestIsNil(t *testing.T) {
	t.Parallel()

	var (
		p  *int
		s  []int
		f  func()
		ch chan int
		e  error
	)

	tests := []struct {
		name string
		v    any
		want bool
	}{
		{name: "nil interface", v: nil, want: true},
		{name: "nil pointer", v: p, want: true},
		{name: "nil slice", v: s, want: true},
		{name: "nil func", v: f, want: true},
		{name: "nil chan", v: ch, want: true},
		{name: "nil error", v: e, want: true},
		{name: "empty slice", v: []int{}, want: false},
		{name: "zero int", v: 0, want: false},
		{name: "empty string", v: "", want: false},
		{name: "struct", v: pair{}, want: false},
	}

	for _, test := range tests {
		if got := isNil(test.v); got != test.want {
			t.Errorf("TestIsNil(%s): got %v, want %v", test.name, got, test.want)
		}
	}
}

func TestBranching(t *testing.T) {
	t.Parallel()

	c0 := Of(1, 2, 3, 4)
	c1 := c0.Filter(isEven)
	c2 := Map(c0, times10)
	c3 := c1.Filter(func(i int) bool { return i > 2 })
	c4 := c1.Limit(1)

	tests := []struct {
		name  string
		chain Chain[int]
		steps []StepKind
		want  []int
	}{
		{name: "c0", chain: c0, steps: []StepKind{}, want: []int{1, 2, 3, 4}},
		{name: "c1", chain: c1, steps: []StepKind{StepFilter}, want: []int{2, 4}},
		{name: "c2", chain: c2, steps: []StepKind{StepMap}, want: []int{10, 20, 30, 40}},
		{name: "c3", chain: c3, steps: []StepKind{StepFilter, StepFilter}, want: []int{4}},
		{name: "c4", chain: c4, steps: []StepKind{StepFilter, StepLimit}, want: []int{2}},
	}

	// Materialize twice in a different order to show nothing is shared between runs.
	for range 2 {
		for _, test := range tests {
			if diff := pretty.Compare(test.want, list(t, test.chain)); diff != "" {
				t.Errorf("TestBranching(%s): -want/+got:\n%s", test.name, diff)
			}
			if diff := pretty.Compare(test.steps, test.chain.Steps()); diff != "" {
				t.Errorf("TestBranching(%s steps): -want/+got:\n%s", test.name, diff)
			}
			if test.chain.Len() != len(test.steps) {
				t.Errorf("TestBranching(%s): got Len() == %d, want %d", test.name, test.chain.Len(), len(test.steps))
			}
		}
		slices.Reverse(tests)
	}
}

// TestStatefulStepsDoNotLeak checks that a stateful step working in place does not change
// the results of a sibling branch or the source.
func TestStatefulStepsDoNotLeak(t *testing.T) {
	t.Parallel()

	src := immutable.NewSlice([]int{3, 1, 2, 1})
	base := From(src)
	sorted := SortedAsc(base)
	distinct := Distinct(base)

	if diff := pretty.Compare([]int{1, 1, 2, 3}, list(t, sorted)); diff != "" {
		t.Errorf("TestStatefulStepsDoNotLeak(sorted): -want/+got:\n%s", diff)
	}
	if diff := pretty.Compare([]int{3, 1, 2}, list(t, distinct)); diff != "" {
		t.Errorf("TestStatefulStepsDoNotLeak(distinct): -want/+got:\n%s", diff)
	}
	if diff := pretty.Compare([]int{3, 1, 2, 1}, src.Copy()); diff != "" {
		t.Errorf("TestStatefulStepsDoNotLeak(source): -want/+got:\n%s", diff)
	}
}

func TestOfCopies(t *testing.T) {
	t.Parallel()

	vals := []int{1, 2, 3}
	c := Of(vals...)
	vals[0] = 100

	if diff := pretty.Compare([]int{1, 2, 3}, list(t, c)); diff != "" {
		t.Errorf("TestOfCopies: -want/+got:\n%s", diff)
	}
}

func TestWithCopies(t *testing.T) {
	t.Parallel()

	vals := []int{3, 4}
	c := Of(1, 2).With(vals...)
	vals[0] = 100

	if diff := pretty.Compare([]int{1, 2, 3, 4}, list(t, c)); diff != "" {
		t.Errorf("TestWithCopies: -want/+got:\n%s", diff)
	}
}

func TestFromSeq(t *testing.T) {
	t.Parallel()

	calls := 0
	seq := func(yield func(int) bool) {
		calls++
		for i := range 3 {
			if !yield(i) {
				return
			}
		}
	}

	c := FromSeq(seq)
	list(t, c)
	got := list(t, c)

	if diff := pretty.Compare([]int{0, 1, 2}, got); diff != "" {
		t.Errorf("TestFromSeq: -want/+got:\n%s", diff)
	}
	if calls != 1 {
		t.Errorf("TestFromSeq: got %d calls to the iterator, want 1", calls)
	}

	if got := list(t, FromSeq[int](nil)); len(got) != 0 {
		t.Errorf("TestFromSeq(nil): got %v, want []", got)
	}
}

func TestFromSet(t *testing.T) {
	t.Parallel()

	c := FromSet(immutable.NewSet("b", "a", "b", "c"))
	if diff := pretty.Compare([]string{"b", "a", "c"}, list(t, c)); diff != "" {
		t.Errorf("TestFromSet: -want/+got:\n%s", diff)
	}
}

func TestFromSortedSet(t *testing.T) {
	t.Parallel()

	s := immutable.NewSortedSet(func(a, b int) bool { return a < b }, 3, 1, 2, 3)
	if diff := pretty.Compare([]int{1, 2, 3}, list(t, FromSortedSet(s))); diff != "" {
		t.Errorf("TestFromSortedSet: -want/+got:\n%s", diff)
	}

	if got := list(t, FromSortedSet(immutable.SortedSet[int]{})); len(got) != 0 {
		t.Errorf("TestFromSortedSet(zero value): got %v, want []", got)
	}
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	src := map[string]int{"a": 1, "b": 2, "c": 3}
	c := FromMap(immutable.NewMap(maps.Clone(src)))

	// The order is not defined, but it must be the same for every run.
	first := list(t, c)
	for range 5 {
		if diff := pretty.Compare(first, list(t, c)); diff != "" {
			t.Fatalf("TestFromMap(order): -want/+got:\n%s", diff)
		}
	}

	got := map[string]int{}
	for _, e := range first {
		got[e.Key] = e.Value
	}
	if diff := pretty.Compare(src, got); diff != "" {
		t.Errorf("TestFromMap: -want/+got:\n%s", diff)
	}
}

func TestPeek(t *testing.T) {
	t.Parallel()

	var seen []int
	c := Of(1, 2, 3, 4).Peek(func(i int) { seen = append(seen, i) }).Filter(isEven)

	if diff := pretty.Compare([]int{2, 4}, list(t, c)); diff != "" {
		t.Errorf("TestPeek: -want/+got:\n%s", diff)
	}
	if diff := pretty.Compare([]int{1, 2, 3, 4}, seen); diff != "" {
		t.Errorf("TestPeek(seen): -want/+got:\n%s", diff)
	}
}

// TestFusedOrder checks that stateless steps see each element in turn instead of one
// step seeing every element before the next starts.
func TestFusedOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	c := Of(1, 2).
		Peek(func(i int) { calls = append(calls, "a"+strings.Repeat("+", i)) }).
		Peek(func(i int) { calls = append(calls, "b"+strings.Repeat("+", i)) })

	list(t, c)
	want := []string{"a+", "b+", "a++", "b++"}
	if diff := pretty.Compare(want, calls); diff != "" {
		t.Errorf("TestFusedOrder: -want/+got:\n%s", diff)
	}
}

func TestNoWorkUntilTerminal(t *testing.T) {
	t.Parallel()

	calls := 0
	c := Map(Of(1, 2, 3), func(i int) int {
		calls++
		return i
	})
	if calls != 0 {
		t.Fatalf("TestNoWorkUntilTerminal: got %d calls before ToList(), want 0", calls)
	}
	list(t, c)
	if calls != 3 {
		t.Errorf("TestNoWorkUntilTerminal: got %d calls, want 3", calls)
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	c := Of(1)
	if c.Context() == nil {
		t.Fatalf("TestContext: got nil Context, want context.Background()")
	}

	ctx := t.Context()
	c2 := c.WithContext(ctx)
	m := Map(c2.Filter(isEven), times10)
	if m.Context() != ctx {
		t.Errorf("TestContext: Context() was not carried through steps")
	}
	if c.ctx != nil {
		t.Errorf("TestContext: WithContext() changed the receiver")
	}
}

func TestEntry(t *testing.T) {
	t.Parallel()

	e := EntryOf("a", 1)
	if e.String() != "a=1" {
		t.Errorf("TestEntry: got %q, want %q", e.String(), "a=1")
	}
}
