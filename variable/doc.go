// Package variable interns variable names into dense, small integer ids.
//
// Every row the solver sees names its columns by string (the caller's
// variable names). Keying every internal table — inner products,
// resistances, bound/free maps, bitsets of changed variables — by string
// would force map[string]... everywhere and rule out the dense bitsets
// the rest of the module relies on. Pool is the single place a variable
// name becomes an int: every other package in this module works in terms
// of the ID it returns.
//
// A variable is born the first time its name is interned and destroyed
// when the caller explicitly removes it (Pool.Remove) after it no
// longer appears in any equation — Pool does not track equation
// membership itself; that bookkeeping belongs to rowstore.
package variable
