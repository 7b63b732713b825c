package fluent

import "fmt"

// Entry is a key/value pair. Chains over immutable.Map values are chains of Entry.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// EntryOf returns an Entry holding k and v.
func EntryOf[K comparable, V any](k K, v V) Entry[K, V] {
	return Entry[K, V]{Key: k, Value: v}
}

// String implements fmt.Stringer.
func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%v=%v", e.Key, e.Value)
}
