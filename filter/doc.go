// Package filter compiles logging specifications: comma-separated
// directives deciding which targets log at which level.
//
//	info,store=off,http=warn,http/router=trace,db
//
// A directive is a level ("info", applies to every target), a bare target
// prefix ("db", enables everything under it), or prefix=level. Lookups pick
// the directive with the longest prefix of the target, so more specific
// directives win regardless of where they appear in the string. An empty
// specification means "error" for every target.
package filter
