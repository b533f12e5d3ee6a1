// Package subst provides the substitution table and alphabets used to score
// aligned symbol pairs.
//
// A Table maps an ordered pair (a, b) to a score. The mapping is NOT
// symmetric: (a, b) and (b, a) are independent entries, and a pair that was
// never set is a lookup error rather than an implicit zero. A missing entry
// means the configuration is incomplete, so callers must propagate the error
// instead of substituting a default.
package subst
