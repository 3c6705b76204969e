// Package bind is Filament's integration layer: it materializes view-node
// trees into live host trees and keeps every reactive input synchronized.
//
// There is no virtual-tree diff pass. Each reactive prop becomes one
// binding — an effect that re-applies exactly one host mutation when its
// value changes — attached to the view-node that owns the host handle.
// Unmounting disposes every binding the subtree owns and detaches the
// handle; the two are never torn down separately.
package bind
