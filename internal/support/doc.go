/*
Package support slices the canonical C++ support header into the pieces a
generation run actually needs.

The canonical header (include/bridge.h) is embedded at build time. Every
optional feature in it lives in one or more guard blocks:

	#ifndef BRIDGE1_RUST_STRING
	#define BRIDGE1_RUST_STRING
	...
	#endif // BRIDGE1_RUST_STRING

A guard may own several disjoint blocks, for example a forward declaration
near the top of the header and the full definition further down. Writing a
guard emits all of its blocks in text order, wrapped in a single
#ifndef/#define ... #endif triple so the emitted fragment is itself
include-guarded. Comment-only lines are dropped on the way.

Requesting a guard that the header does not declare is a fatal error,
whether or not the caller needs the guard's code.
*/
package support
