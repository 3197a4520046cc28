package guideline

import (
	"strings"

	"github.com/leapstack-labs/lintattrs/pkg/core"
)

// Documentation the catalog is derived from.
var defaultReferences = []Reference{
	{Label: "rust coding guidelines", URL: "https://rust-coding-guidelines.github.io/rust-coding-guidelines-zh/"},
	{Label: "rustc lint doc", URL: "https://doc.rust-lang.org/rustc/lints/listing/index.html"},
	{Label: "rust-clippy doc", URL: "https://rust-lang.github.io/rust-clippy/master/index.html"},
}

const (
	required    = core.TierRequired
	recommended = core.TierRecommended
	optional    = core.TierOptional
)

// defaultEntries is the organization catalog. Keep related guidelines
// adjacent; the rendered block follows this order.
var defaultEntries = []Entry{
	{
		ID: "G.VAR.02", Tier: required, Enabled: true,
		Directives: []string{"non_ascii_idents"},
		Rationale:  "Do not use non-ASCII characters in identifiers",
	},
	{
		ID: "G.CMT.01", Tier: optional, Enabled: true,
		Directives: []string{"clippy::missing_errors_doc"},
		Rationale:  "Add Error documentation in the docs of public functions that return Result",
	},
	{
		ID: "G.CMT.02", Tier: required, Enabled: true,
		Directives: []string{"clippy::missing_panics_doc"},
		Rationale:  "Add Panic documentation in the docs of public APIs that may panic under certain circumstances",
	},
	{
		ID: "G.VAR.03", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::shadow_reuse", "clippy::shadow_same", "clippy::shadow_unrelated"},
		Rationale:  "Variable shadowing should be used carefully",
	},
	{
		ID: "G.CNS.05", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::missing_const_for_fn"},
		Rationale:  "Use const fn for functions or methods wherever applicable",
	},
	{
		ID: "G.TYP.01", Tier: required, Enabled: true,
		Directives: []string{
			"clippy::as_conversions",
			"clippy::cast_lossless",
			"clippy::cast_possible_truncation",
			"clippy::cast_possible_wrap",
			"clippy::ptr_as_ptr",
		},
		Rationale: "Prefer safe conversion functions over `as` for type casting",
	},
	{
		ID: "G.VAR.01", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::many_single_char_names"},
		Rationale:  "Avoid using too many meaningless variable names when destructuring tuples with more than four variables",
	},
	{
		ID: "G.TYP.02", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::default_numeric_fallback"},
		Rationale:  "Explicitly specify the type for numeric literals",
	},
	{
		ID: "G.TYP.03", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::checked_conversions"},
		Rationale:  "Use `try_from` methods instead of relying on numeric boundaries for safe conversion",
	},
	{
		ID: "G.TYP.BOL.02", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::match_bool"},
		Rationale:  "Use `if` expressions instead of `match` for boolean conditions",
	},
	{
		ID: "G.TYP.BOL.05", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::needless_bitwise_bool"},
		Rationale:  "Use logical operators (&&/||) instead of bitwise operators (&/|) for boolean operations when not necessary",
	},
	{
		ID: "G.TYP.INT.01", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::arithmetic_side_effects"},
		Rationale:  "Consider the risks of integer overflow, wrapping, and truncation in integer arithmetic",
	},
	{
		ID: "G.TYP.INT.02", Tier: required, Enabled: true,
		Directives: []string{"clippy::cast_sign_loss"},
		Rationale:  "Avoid `as` casting between signed and unsigned integers; use safe conversion functions",
	},
	{
		ID: "G.TYP.INT.03", Tier: required, Enabled: true,
		Directives: []string{"clippy::modulo_arithmetic"},
		Rationale:  "Avoid using `%` for modulo operations on negative numbers",
	},
	{
		ID: "G.TYP.FLT.02", Tier: required, Enabled: true,
		Directives: []string{"clippy::cast_precision_loss"},
		Rationale:  "Avoid precision loss when casting from any numeric type to floating-point; use safe conversion functions",
	},
	{
		ID: "G.TYP.FLT.03", Tier: required, Enabled: true,
		Directives: []string{"clippy::float_arithmetic", "clippy::float_cmp", "clippy::float_cmp_const"},
		Rationale:  "Be cautious of precision loss in floating-point arithmetic and comparisons",
	},
	{
		ID: "G.TYP.FLT.04", Tier: required, Enabled: true,
		Directives: []string{"clippy::imprecise_flops", "clippy::suboptimal_flops"},
		Rationale:  "Use Rust's built-in methods for floating-point calculations",
	},
	{
		ID: "G.TYP.ARR.01", Tier: optional, Enabled: true,
		Directives: []string{"clippy::large_stack_arrays"},
		Rationale:  "Use static variables instead of constants for large global arrays",
	},
	{
		ID: "G.TYP.SCT.01", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::exhaustive_structs"},
		Rationale:  "Add `#[non_exhaustive]` attribute to publicly exported structs",
	},
	{
		ID: "G.TYP.ENM.05", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::exhaustive_enums"},
		Rationale:  "Add `#[non_exhaustive]` attribute to publicly exported enums",
	},
	{
		ID: "G.TYP.SCT.02", Tier: optional, Enabled: true,
		Directives: []string{"clippy::struct_excessive_bools"},
		Rationale:  "Consider refactoring when a struct contains more than three boolean fields",
	},
	{
		ID: "G.FUD.03", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::fn_params_excessive_bools"},
		Rationale:  "Consider using a custom struct or enum instead of many boolean parameters in function signatures",
	},
	{
		ID: "G.TYP.ENM.04", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::enum_glob_use"},
		Rationale:  "Avoid using glob imports for enum variants in `use` statements",
	},
	{
		ID: "G.CTF.02", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::else_if_without_else"},
		Rationale:  "Ensure `else` branches are present whenever `else if` is used",
	},
	{
		ID: "G.STR.02", Tier: optional, Enabled: true,
		Directives: []string{"clippy::string_add_assign", "clippy::string_add"},
		Rationale:  "Use `push_str` method for appending strings",
	},
	{
		ID: "G.STR.03", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::string_lit_as_bytes"},
		Rationale:  "Convert string literals containing only ASCII characters to byte sequences using `b\"str\"` syntax instead of `as_bytes()`",
	},
	{
		ID: "G.STR.05", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::string_slice"},
		Rationale:  "Take care to avoid disrupting UTF-8 encoding when slicing strings at specific positions",
	},
	{
		ID: "G.FUD.02", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::large_types_passed_by_value"},
		Rationale:  "Prefer passing large values by reference if function parameters implement `Copy`",
	},
	{
		ID: "G.FUD.04", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::trivially_copy_pass_by_ref"},
		Rationale:  "Pass small `Copy` type values by value instead of by reference",
	},
	{
		ID: "G.FUD.05", Tier: optional, Enabled: true,
		Directives: []string{"clippy::inline_always"},
		Rationale:  "Avoid using `inline(always)` for functions indiscriminately",
	},
	{
		ID: "G.GEN.02", Tier: required, Enabled: true,
		Directives: []string{"clippy::inefficient_to_string"},
		Rationale:  "Be cautious to avoid using generic default implementations of some methods from Rust's standard library; prefer specific type implementations",
	},
	{
		ID: "G.TRA.BLN.01", Tier: optional, Enabled: true,
		Directives: []string{"clippy::default_trait_access"},
		Rationale:  "Prefer using the concrete type's `default()` method over calling `Default::default()`",
	},
	{
		ID: "G.TRA.BLN.02", Tier: required, Enabled: true,
		Directives: []string{"clippy::copy_iterator"},
		Rationale:  "Do not implement the `Copy` trait for iterators",
	},
	{
		ID: "G.TRA.BLN.07", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::cloned_instead_of_copied"},
		Rationale:  "Use `copied` method instead of `cloned` for iterable `Copy` types",
	},
	{
		ID: "G.ERR.01", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::unwrap_used"},
		Rationale:  "Avoid using `unwrap` indiscriminately when handling `Option<T>` and `Result<T, E>`",
	},
	{
		ID: "G.MOD.03", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::wildcard_imports"},
		Rationale:  "Avoid using wildcard imports in module declarations",
	},
	{
		ID: "G.MOD.04", Tier: required, Enabled: true,
		Directives: []string{"clippy::self_named_module_files"},
		Rationale:  "Avoid using different module layout styles within the same project",
	},
	{
		ID: "G.CAR.02", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::cargo_common_metadata"},
		Rationale:  "Ensure that necessary metadata is included in the `Cargo.toml` of the crate",
	},
	{
		ID: "G.CAR.03", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::negative_feature_names", "clippy::redundant_feature_names"},
		Rationale:  "Avoid negative or redundant prefixes and suffixes in feature names",
	},
	{
		ID: "G.CAR.04", Tier: required, Enabled: true,
		Directives: []string{"clippy::wildcard_dependencies"},
		Rationale:  "Avoid using wildcard dependencies in `Cargo.toml`",
	},
	{
		ID: "G.MAC.01", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::dbg_macro"},
		Rationale:  "Only use the `dbg!()` macro for debugging code",
	},
	{
		ID: "G.ASY.02", Tier: required, Enabled: true,
		Directives: []string{"clippy::await_holding_lock"},
		Rationale:  "Ensure that locks are released before `await` is called in asynchronous code",
	},
	{
		ID: "G.ASY.03", Tier: required, Enabled: true,
		Directives: []string{"clippy::await_holding_refcell_ref"},
		Rationale:  "Handle `RefCell` references across `await` points",
	},
	{
		ID: "G.ASY.04", Tier: recommended, Enabled: true,
		Directives: []string{"clippy::unused_async"},
		Rationale:  "Avoid defining unnecessary async functions",
	},
	{
		ID: "G.UNS.SAS.02", Tier: required, Enabled: true,
		Directives: []string{"clippy::debug_assert_with_mut_call"},
		Rationale:  "Use `assert!` instead of `debug_assert!` to verify boundary conditions in unsafe functions",
	},
}

var defaultRegistry = MustNew(defaultEntries, WithReferences(defaultReferences...))

// Default returns the organization catalog.
func Default() *Registry {
	return defaultRegistry
}

// sectionNames titles the top-level areas of guideline IDs.
var sectionNames = map[string]string{
	"VAR": "Variables",
	"CMT": "Comments",
	"CNS": "Constants",
	"TYP": "Data Types",
	"STR": "Strings",
	"CTF": "Control Flow",
	"FUD": "Functions",
	"GEN": "Generics",
	"TRA": "Traits",
	"ERR": "Error Handling",
	"MOD": "Modules",
	"CAR": "Cargo",
	"MAC": "Macros",
	"ASY": "Async",
	"UNS": "Unsafe",
}

// SectionName returns the title of the area a group belongs to, e.g.
// "TYP.FLT" belongs to "Data Types". Unknown areas return the area code.
func SectionName(group string) string {
	area, _, _ := strings.Cut(group, ".")
	if name, ok := sectionNames[area]; ok {
		return name
	}
	return area
}
