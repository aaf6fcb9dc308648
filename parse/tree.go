// Package parse contains the parse engine consumed by the frontend: given a
// derived grammar and a token sequence, it produces every parse tree that is
// grammatically valid and rooted at the grammar's start symbol. The engine is
// an Earley chart parser, so ambiguous and mutually recursive grammars are
// handled without restriction; ambiguity simply yields multiple trees.
package parse

import (
	"fmt"
	"strings"

	"github.com/dekarrin/garfish/internal/util"
	"github.com/dekarrin/garfish/lex"
)

const (
	treeLevelEmpty               = "        "
	treeLevelOngoing             = "  |     "
	treeLevelPrefix              = "  |%s: "
	treeLevelPrefixLast          = `  \%s: `
	treeLevelPrefixNamePadChar   = '-'
	treeLevelPrefixNamePadAmount = 3
)

func makeTreeLevelPrefix(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefix, msg)
}

func makeTreeLevelPrefixLast(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefixLast, msg)
}

// Tree is a parse tree node. It is one of three variants: a terminal node
// (Terminal is set and Source holds the matched token), a nonterminal node
// (Value is the head tag and Children the constituent nodes), or the empty
// node (Empty is set; it matches nothing and never reconstructs to a value).
type Tree struct {
	// Terminal is whether this node is for a terminal symbol.
	Terminal bool

	// Empty is whether this is the empty node.
	Empty bool

	// Value is the symbol tag at this node.
	Value string

	// Source is only available when Terminal is true.
	Source lex.Token

	// Children is all children of the parse tree.
	Children []*Tree
}

// ChildTags returns the ordered tags of the node's children. Together with
// Value this forms the exact production key the node instantiates.
func (pt Tree) ChildTags() []string {
	tags := make([]string, len(pt.Children))
	for i := range pt.Children {
		tags[i] = pt.Children[i].Value
	}
	return tags
}

// String returns a prettified representation of the entire parse tree
// suitable for use in line-by-line comparisons of tree structure. Two parse
// trees are considered semantically identical if they produce identical
// String() output.
func (pt Tree) String() string {
	return pt.leveledStr("", "")
}

func (pt Tree) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder

	sb.WriteString(firstPrefix)
	if pt.Empty {
		sb.WriteString("(ε)")
	} else if pt.Terminal {
		sb.WriteString(fmt.Sprintf("(TERM %q)", pt.Source.Lexeme))
	} else {
		sb.WriteString(fmt.Sprintf("( %s )", pt.Value))
	}

	for i := range pt.Children {
		sb.WriteRune('\n')
		var leveledFirstPrefix string
		var leveledContPrefix string
		if i+1 < len(pt.Children) {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefix("")
			leveledContPrefix = contPrefix + treeLevelOngoing
		} else {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefixLast("")
			leveledContPrefix = contPrefix + treeLevelEmpty
		}
		itemOut := pt.Children[i].leveledStr(leveledFirstPrefix, leveledContPrefix)
		sb.WriteString(itemOut)
	}

	return sb.String()
}

// Copy returns a duplicate, deeply-copied parse tree.
func (pt Tree) Copy() Tree {
	newPt := Tree{
		Terminal: pt.Terminal,
		Empty:    pt.Empty,
		Value:    pt.Value,
		Source:   pt.Source,
		Children: make([]*Tree, len(pt.Children)),
	}

	for i := range pt.Children {
		if pt.Children[i] != nil {
			newChild := pt.Children[i].Copy()
			newPt.Children[i] = &newChild
		}
	}

	return newPt
}

// Equal returns whether the Tree is equal to the given object. If the given
// object is not a Tree, returns false, else returns whether the two parse
// trees have the exact same structure. Source token positions are not
// considered, only structure and lexemes.
func (pt Tree) Equal(o any) bool {
	other, ok := o.(Tree)
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*Tree)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if pt.Terminal != other.Terminal {
		return false
	} else if pt.Empty != other.Empty {
		return false
	} else if pt.Value != other.Value {
		return false
	} else if pt.Terminal && !pt.Source.Equal(other.Source) {
		return false
	} else if !util.EqualSlices(pt.Children, other.Children) {
		return false
	}
	return true
}
