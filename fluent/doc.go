/*
Package fluent provides a chainable way to build and transform the containers in
github.com/gostdlib/fluent/values/immutable without ever holding a mutable intermediate value.

A Chain is started from a container, an iterator or a list of values, has steps added to it and is
then materialized with a terminal operation:

	evens, err := fluent.Of(1, 2, 3, 4).
		Filter(func(i int) bool { return i%2 == 0 }).
		ToList() // [2 4]

Steps run in the order they were added. Adding a step never changes the Chain it was called on,
so a Chain can be branched:

	base := fluent.From(people)
	adults := base.Filter(isAdult)
	minors := base.Filter(func(p Person) bool { return !isAdult(p) })

base, adults and minors can all be materialized, any number of times, and always produce the same
result as long as the functions they were given are deterministic.

Go methods cannot introduce type parameters, so steps that change the element type or require
comparable elements are package functions:

	names := fluent.Map(adults, func(p Person) string { return p.Name })
	unique, err := fluent.ToSet(names)
	byName, err := fluent.ToMap(adults, Person.GetName, Person.GetAge)

Stateless steps (Filter, Map, Peek, RejectingNulls, DroppingNulls) are fused into a single pass over
the elements. Steps that need every element (Distinct, Sorted, Limit, Skip, FlatMap, With, Concat)
buffer at that point.

# Errors

Terminal operations return errors built with github.com/gostdlib/fluent/errors. Use errors.Is() with
ErrNullElement, ErrDuplicateKey or ErrTransformStepFailed to find out what failed, and errors.As()
with NullElementError, DuplicateKeyError or StepError for the details. A function passed to a step
that panics, or returns an error in the Try variants, produces an ErrTransformStepFailed error that
names the step.

The Context set with WithContext() is used to record the error on the current OpenTelemetry span.
Failures are also logged at the Debug level to telemetry/log.Default().
*/
package fluent
