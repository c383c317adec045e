package evaluator

// reservedNames holds identifiers user code cannot declare or assign
// (spec.md §6). `self` is the only one spec.md names, but kept as a set
// rather than a single string comparison so a future reserved word is a
// one-line table edit, not a hunt through every call site — the same shape
// as the teacher's IntegerType/FloatType closed string enums.
var reservedNames = map[string]bool{
	"self": true,
}

func isReserved(name string) bool {
	return reservedNames[name]
}
