/*
Package namepath parses qualified identifiers such as `org::blobstore::Client`
into a validated NamePath.

Paths are read from a token Stream produced by the HCL expression lexer, so a
path can be parsed either on its own or embedded in a larger token sequence
(a type expression, an attribute value). Two entry points exist:

  - ParseUnquoted reads bare identifiers separated by `::`.
  - ParseQuotedOrUnquoted additionally accepts a string literal whose
    contents are re-lexed at their own source position and parsed with
    ParseUnquoted, so `"a::b"` and `a::b` always produce the same path.

Every failure is reported as a *MalformedPathError carrying the source range
of the offending token.
*/
package namepath
