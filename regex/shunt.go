package regex

import "github.com/dekarrin/lexgen/lexerr"

// precedence gives the binding strength of each operator per spec §4.2:
// `* = + > ∘ > |`, all left-associative. Literals/ranges/sentinel/ε never
// reach this table; they are never pushed to the operator stack.
func precedence(k TokenKind) int {
	switch k {
	case KindStar, KindPlus:
		return 3
	case KindConcat:
		return 2
	case KindUnion:
		return 1
	default:
		return 0
	}
}

func isUnary(k TokenKind) bool {
	return k == KindStar
}

// ToPostfix converts a desugared infix token stream (spec §4.2 has already
// run, so only *, ∘, | remain as operators, plus parens) to postfix order
// using the standard shunting-yard algorithm (spec §4.3).
func ToPostfix(tokens []Token) ([]Token, error) {
	var output []Token
	var opStack []Token

	popToOutput := func() {
		output = append(output, opStack[len(opStack)-1])
		opStack = opStack[:len(opStack)-1]
	}

	for _, t := range tokens {
		switch t.Kind {
		case KindLiteral, KindRange, KindSentinel, KindEmpty:
			output = append(output, t)

		case KindLParen:
			opStack = append(opStack, t)

		case KindRParen:
			found := false
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				if top.Kind == KindLParen {
					opStack = opStack[:len(opStack)-1]
					found = true
					break
				}
				popToOutput()
			}
			if !found {
				return nil, lexerr.UnbalancedParens("unmatched ')'")
			}

		case KindStar, KindPlus, KindUnion, KindConcat:
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				if top.Kind == KindLParen {
					break
				}
				if precedence(top.Kind) >= precedence(t.Kind) {
					popToOutput()
				} else {
					break
				}
			}
			opStack = append(opStack, t)

		default:
			return nil, lexerr.MalformedExpression("unexpected token kind in infix stream: " + t.Kind.String())
		}
	}

	for len(opStack) > 0 {
		top := opStack[len(opStack)-1]
		if top.Kind == KindLParen {
			return nil, lexerr.UnbalancedParens("unmatched '('")
		}
		popToOutput()
	}

	return output, nil
}
