package types

// Operator represents query comparison operators.
type Operator string

const (
	// Basic comparison operators.
	EQ Operator = "="
	NE Operator = "!="
	GT Operator = ">"
	GE Operator = ">="
	LT Operator = "<"
	LE Operator = "<="

	// Extended operators.
	IN         Operator = "IN"
	NotIn      Operator = "NOT IN"
	LIKE       Operator = "LIKE"
	NotLike    Operator = "NOT LIKE"
	IsNull     Operator = "IS NULL"
	IsNotNull  Operator = "IS NOT NULL"
	EXISTS     Operator = "EXISTS"
	NotExists  Operator = "NOT EXISTS"
	BETWEEN    Operator = "BETWEEN"
	NotBetween Operator = "NOT BETWEEN"
)

var negations = map[Operator]Operator{
	EQ:         NE,
	NE:         EQ,
	GT:         LE,
	LE:         GT,
	LT:         GE,
	GE:         LT,
	IN:         NotIn,
	NotIn:      IN,
	LIKE:       NotLike,
	NotLike:    LIKE,
	IsNull:     IsNotNull,
	IsNotNull:  IsNull,
	EXISTS:     NotExists,
	NotExists:  EXISTS,
	BETWEEN:    NotBetween,
	NotBetween: BETWEEN,
}

// Negate returns the operator with the opposite truth value.
// Operators without a known complement are returned unchanged.
func (op Operator) Negate() Operator {
	if n, ok := negations[op]; ok {
		return n
	}
	return op
}

// Signed returns op, or its negation when negated is true.
func (op Operator) Signed(negated bool) Operator {
	if negated {
		return op.Negate()
	}
	return op
}
