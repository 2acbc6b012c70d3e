// Package conv provides a configurable, reflection-based value converter.
// It fits decoded document values into typed destinations: primitives, named
// types, time parsing, text unmarshalers, slices, maps, pointers, and custom
// conversion functions registered per source/destination type.
package conv
