package dice

// node is an element of the parsed notation tree. A nil node contributes
// nothing to the flattened Expression.
type node interface {
	offset() int
}

// literal is an unsigned integer, e.g. "12". An overflowed literal reads as 0.
type literal struct {
	value    int
	overflow bool
	at       int
}

// group is a parenthesised sub-expression.
type group struct {
	inner node
	at    int
}

// unary is a leading sign applied to its operand.
type unary struct {
	neg     bool
	operand node
	at      int
}

// binary is a sum or difference of two terms.
type binary struct {
	neg         bool
	left, right node
	at          int
}

// roll is a die term "[count]d<size>". A nil count means one die; a size
// below 1 marks a malformed term that contributes nothing.
type roll struct {
	count node
	size  int
	at    int
}

func (n *literal) offset() int { return n.at }
func (n *group) offset() int   { return n.at }
func (n *unary) offset() int   { return n.at }
func (n *binary) offset() int  { return n.at }
func (n *roll) offset() int    { return n.at }
