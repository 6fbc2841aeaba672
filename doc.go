// Copyright 2024, the clapgo authors. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package clapgo provides declarative command-line argument parsing and validation.
//
// A program declares its flags, options, positional parameters, groups and nested
// subcommands as a tree of Command values. NewParser compiles the tree into an
// immutable specification, rejecting inconsistent declarations up front. Parsing an
// argument vector then yields either Matches, a read-only view of what was given, or
// an *errs.Error which names the offending token, the identifiers involved and the
// command path, and renders a diagnostic with the relevant usage line.
//
// Supported syntax:
//
//	--long value, --long=value, --lo (unambiguous prefix)
//	-s value, -svalue, -s=value, -abc (bundled flags)
//	--           (everything after is positional)
//	name         (selects a subcommand, which parses the remaining arguments)
//
// Validation runs per level in a fixed order: arity, possible values, conflicts,
// requirements and finally groups.
package clapgo
