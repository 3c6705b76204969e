// Package host defines the host-tree adapter boundary: the abstract
// interface the binding layer drives to create and mutate presentation
// nodes, plus MemAdapter, a complete in-memory implementation used as the
// off-tree test harness and as the server-side mirror for remote targets.
package host
