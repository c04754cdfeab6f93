// Shape templates for rendering generic types – nothing more!
// Copyright (C) 2020 Marcus Perlick
//
// Package typeshape renders generic types in custom notations that the
// language's own generic syntax cannot express. Think of type
// constructors applied to arguments, function types or products that a
// library encodes with marker types like App<F, A>.
//
// A type that wants a custom notation carries a shape template. The
// template is plain text interspersed with directives:
//
//   %N          the fully rendered type argument N (0-based)
//   %.NAME.     a link to the type itself, displayed as NAME
//   %^N         the N-th fragment (1-based) handed down by an enclosing
//               application
//   %(N,a,b...) apply type argument N to the rendered arguments a, b...
//               If N has a shape itself its %^1, %^2... become a, b...
//   %'text'     text, taken literally
//
// Brackets [ and ] are read as < and >. A template wrapped in double
// quotes is unquoted first and an empty template means "no custom shape".
//
// Tokenize parses a template once, Render evaluates the tokens for a
// concrete type instantiation and ApplyType does the higher-kinded
// composition. Both work through a Resolver that is implemented by the
// full type renderer. Package linker provides one. Rendering never fails
// on a broken template. It emits the offending index or "_" instead, so
// the mistake shows up in the generated documentation. – Be aware of
// infinite recursion! A shape that applies its own type panics with a
// CycleError, see Catch.
package typeshape
