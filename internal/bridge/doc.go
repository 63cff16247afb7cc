// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package bridge provides the Go representation of bridge declaration files.
// A declaration file is HCL and lists, per bridge, the types and functions
// shared across the language boundary:
//
//	bridge "blobstore" {
//	  namespace = "org::blobstore"
//	  include   = ["demo/include/blobstore.h"]
//
//	  struct "BlobMetadata" {
//	    field "size" { type = "usize" }
//	    field "tags" { type = "Vec<String>" }
//	  }
//
//	  function "put" {
//	    param "parts" { type = "&mut MultiBuf" }
//	    returns = "Result<u64>"
//	  }
//	}
//
// Loading resolves every qualified name (namespaces, type paths) with the
// namepath package and parses every type string into a Type tree. Problems
// are collected as hcl.Diagnostics across all declarations, so a single bad
// path is reported together with every other problem instead of stopping the
// load at the first one.
package bridge
