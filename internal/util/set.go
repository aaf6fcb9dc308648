package util

import (
	"fmt"
	"sort"
	"strings"
)

// ISet is the interface shared by set types in this package.
type ISet[E any] interface {

	// Add adds the given element to the Set. If the element is already in the
	// set, no effect occurs.
	Add(element E)

	// AddAll adds all elements in s2 to the Set.
	AddAll(s2 ISet[E])

	// Remove removes the given element from the Set. If the element is already
	// not in the set, no effect occurs.
	Remove(element E)

	// Has returns whether the given set has the specified element.
	Has(element E) bool

	// Len returns the number of elements in the set.
	Len() int

	// Elements returns the elements of the set as a slice, in no particular
	// order.
	Elements() []E

	// Empty returns whether the set is empty.
	Empty() bool

	// Equal returns whether a Set equals another value. Ordering is not
	// considered.
	Equal(o any) bool
}

// KeySet is a map[E]bool with methods added to fulfill ISet[E].
type KeySet[E comparable] map[E]bool

func NewKeySet[E comparable](of ...map[E]bool) KeySet[E] {
	s := KeySet[E]{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

func KeySetOf[E comparable](sl []E) KeySet[E] {
	s := NewKeySet[E]()
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

func (s KeySet[E]) Copy() KeySet[E] {
	newS := NewKeySet[E]()
	for k := range s {
		newS[k] = true
	}
	return newS
}

// Union returns a new Set that is the union of s and o.
func (s KeySet[E]) Union(o ISet[E]) KeySet[E] {
	newSet := s.Copy()
	newSet.AddAll(o)
	return newSet
}

// Difference returns a new Set that contains the elements that are in s but
// not in o.
func (s KeySet[E]) Difference(o ISet[E]) KeySet[E] {
	newSet := NewKeySet[E]()
	for k := range s {
		if !o.Has(k) {
			newSet.Add(k)
		}
	}
	return newSet
}

func (s KeySet[E]) Has(value E) bool {
	_, has := s[value]
	return has
}

func (s KeySet[E]) Add(value E) {
	s[value] = true
}

func (s KeySet[E]) Remove(value E) {
	delete(s, value)
}

func (s KeySet[E]) Len() int {
	return len(s)
}

func (s KeySet[E]) Empty() bool {
	return s.Len() == 0
}

func (s KeySet[E]) AddAll(s2 ISet[E]) {
	for _, element := range s2.Elements() {
		s.Add(element)
	}
}

// Elements returns the elements of s as a slice. No particular order is
// guaranteed nor should it be relied on.
func (s KeySet[E]) Elements() []E {
	sl := make([]E, 0, len(s))
	for item := range s {
		sl = append(sl, item)
	}
	return sl
}

// StringOrdered shows the contents of the set. Items are guaranteed to be
// ordered by their string forms.
func (s KeySet[E]) StringOrdered() string {
	convs := []string{}
	for k := range s {
		convs = append(convs, fmt.Sprintf("%v", k))
	}
	sort.Strings(convs)

	var sb strings.Builder
	sb.WriteRune('{')
	for i := range convs {
		sb.WriteString(convs[i])
		if i+1 < len(convs) {
			sb.WriteRune(',')
			sb.WriteRune(' ')
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

// String shows the contents of the set.
func (s KeySet[E]) String() string {
	return s.StringOrdered()
}

// Equal returns whether two sets have the same items. If anything other than
// an ISet[E] or *ISet[E] is passed in, they will not be considered equal.
//
// This does NOT call Equal on the individual items, but rather a simple
// equality check.
func (s KeySet[E]) Equal(o any) bool {
	other, ok := o.(ISet[E])
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*ISet[E])
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		} else {
			other = *otherPtr
		}
	}

	if s.Len() != other.Len() {
		return false
	}

	for k := range s {
		if !other.Has(k) {
			return false
		}
	}

	return true
}
