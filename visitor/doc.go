// Package visitor offers visitors used to traverse decoded documents.
// Maps and structs are visited with string keys, slices and arrays with their
// positions, so that any container can be read as a document node.
package visitor
