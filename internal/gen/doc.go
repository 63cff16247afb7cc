// Package gen turns a loaded bridge declaration into a C++ header.
//
// A run renders the user declarations first, recording every support
// builtin and standard header the rendered code relies on. It then writes
// the preamble, the include block and the support section, in which every
// guard of the canonical header is extracted in a fixed order with its
// needed flag, followed by the user declarations. Each run owns its include
// registry and output buffer, so independent bridges are generated
// concurrently by GenerateAll while sharing one read-only support.Header.
package gen
