// Package catalog holds the built-in technology signatures.
//
// Each signature is a plain (name, category, predicate) record. Predicates
// look only at the page HTML and are compiled once at package init.
package catalog
