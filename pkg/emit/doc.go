// Package emit renders a guideline catalog into a block of crate-level lint
// attributes ready to be spliced at the top of a crate root.
//
// Each entry becomes one fragment: an annotation comment carrying the tier,
// guideline ID and rationale, followed by the attribute itself.
//
//	// [REQUIRED] G.VAR.02 Do not use non-ASCII characters in identifiers
//	#![deny(non_ascii_idents)]
//	// [OPTIONAL] G.CMT.01 Add Error documentation in the docs of public functions that return Result
//	// #![warn(clippy::missing_errors_doc)]
//
// REQUIRED entries render as deny, RECOMMENDED as warn. OPTIONAL and
// disabled entries stay in the block commented out so the catalog's full
// intent is visible in the generated code.
//
// Rendering is a pure function of the registry and Options: the same input
// always produces byte-identical output.
package emit
