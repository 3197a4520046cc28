// Package core defines the shared vocabulary of lintattrs.
//
// This package contains the closed guideline Tier and directive Severity
// enumerations and the total mapping between them. Everything else depends
// on core, not the reverse; core imports ONLY stdlib.
package core
