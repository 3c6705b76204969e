// Package vnode defines Filament's view-node model: a tagged-union
// description of a view fragment (element, text, component invocation, or
// fragment of siblings) plus constructors, shallow cloning, type
// inspection, children normalization and key resolution.
//
// The model is pure data with no behavior of its own; the bind package
// materializes it against a host tree and the render package serializes it
// to HTML.
package vnode
