package fluent_test

import (
	"fmt"
	"strings"

	"github.com/gostdlib/fluent/errors"
	"github.com/gostdlib/fluent/fluent"
	"github.com/gostdlib/fluent/values/immutable"
)

type person struct {
	Name string
	Team string
	Age  int
}

var people = immutable.NewSlice([]person{
	{Name: "ana", Team: "red", Age: 31},
	{Name: "bo", Team: "blue", Age: 17},
	{Name: "cy", Team: "red", Age: 45},
	{Name: "di", Team: "blue", Age: 22},
})

func Example() {
	adults := fluent.From(people).Filter(func(p person) bool { return p.Age >= 18 })

	names, err := fluent.Map(adults, func(p person) string { return strings.ToUpper(p.Name) }).ToList()
	if err != nil {
		panic(err)
	}
	fmt.Println(names.Copy())
	// Output: [ANA CY DI]
}

func ExampleToMap() {
	byTeam, err := fluent.ToMap(
		fluent.From(people),
		func(p person) string { return p.Team },
		func(p person) int { return 1 },
		fluent.WithMerge(func(a, b int) int { return a + b }),
	)
	if err != nil {
		panic(err)
	}
	fmt.Println(byTeam.Len(), byTeam.Copy()["red"], byTeam.Copy()["blue"])

	_, err = fluent.ToMap(
		fluent.From(people),
		func(p person) string { return p.Team },
		func(p person) string { return p.Name },
	)
	fmt.Println(errors.Is(err, fluent.ErrDuplicateKey))
	// Output:
	// 2 2 2
	// true
}

func ExampleChain_RejectingNulls() {
	a := &person{Name: "ana"}
	_, err := fluent.Of(a, nil).RejectingNulls().ToList()

	var ne fluent.NullElementError
	if errors.As(err, &ne) {
		fmt.Println(ne)
	}
	// Output: step 0(RejectNull): nil element at position 1
}

func ExampleTryMap() {
	parse := func(s string) (int, error) {
		if s == "" {
			return 0, errors.New("empty")
		}
		return len(s), nil
	}

	_, err := fluent.TryMap(fluent.Of("a", "", "ccc"), parse).ToList()

	var se fluent.StepError
	if errors.As(err, &se) {
		fmt.Println(errors.Is(err, fluent.ErrTransformStepFailed), se)
	}
	// Output: true step 0(Map): empty
}
