package regex

import "github.com/dekarrin/lexgen/lexerr"

// Rule is one (regex, tag) pair supplied by an external rule-file reader
// (spec §6); the action source that tag maps to is the emitter's concern,
// not this package's.
type Rule struct {
	Regex string
	Tag   int
}

// CombinedTree builds the single root spec §4.5 describes for N rules:
//
//	R₁ ∘ #₁ | R₂ ∘ #₂ | … | R_N ∘ #_N
//
// Each rule's regex is independently tokenized, desugared, converted to
// postfix, and built into a subtree; the subtrees are then concatenated
// with a distinct sentinel leaf carrying that rule's tag and unioned
// together left-to-right. Declaration order is preserved by processing
// rules in slice order, which is what gives lower tags priority at
// accept-time ties later in subset construction.
func CombinedTree(rules []Rule) (*Node, error) {
	if len(rules) == 0 {
		return nil, lexerr.MalformedExpression("no rules supplied")
	}

	var root *Node
	for _, r := range rules {
		sub, err := ruleSubtree(r)
		if err != nil {
			return nil, err
		}
		if root == nil {
			root = sub
		} else {
			root = &Node{Kind: NodeUnion, Left: root, Right: sub}
		}
	}

	return root, nil
}

// ruleSubtree builds R ∘ # for a single rule.
func ruleSubtree(r Rule) (*Node, error) {
	tokens, err := Tokenize(r.Regex)
	if err != nil {
		return nil, err
	}
	desugared := Desugar(tokens)
	postfix, err := ToPostfix(desugared)
	if err != nil {
		return nil, err
	}
	tree, err := Build(postfix)
	if err != nil {
		return nil, err
	}

	if Nullable(tree) {
		return nil, lexerr.NullableRule(r.Tag)
	}

	sentinelLeaf := &Node{Kind: NodeSentinel, Tag: r.Tag}
	return &Node{Kind: NodeConcat, Left: tree, Right: sentinelLeaf}, nil
}
