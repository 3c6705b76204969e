package server

import (
	"sync"

	"github.com/filament-ui/filament/pkg/host"
	"github.com/filament-ui/filament/pkg/protocol"
)

// Recorder is a host adapter that keeps a server-side mirror of the client
// tree and records every mutation as a wire op. The binding layer drives it
// exactly like any other adapter; the session drains the recorded ops into
// sequenced frames for the socket.
//
// Node handles returned by the recorder are the mirror's nodes, so event
// dispatch and HTML snapshots run against the mirror directly.
type Recorder struct {
	mu sync.Mutex

	mirror *host.MemAdapter

	// refs assigns each created node the wire ref the client knows it by.
	refs    map[*host.MemNode]uint64
	byRef   map[uint64]*host.MemNode
	nextRef uint64

	ops []protocol.Op
	seq uint64

	// notify is signalled (non-blocking) after each recorded op.
	notify chan struct{}
}

// NewRecorder creates a recorder with an empty mirror tree. The mirror's
// container is pre-registered as ref 0, the root the client mounts into.
func NewRecorder() *Recorder {
	r := &Recorder{
		mirror: host.NewMemAdapter(),
		refs:   make(map[*host.MemNode]uint64),
		byRef:  make(map[uint64]*host.MemNode),
		notify: make(chan struct{}, 1),
	}
	container := r.mirror.NewContainer()
	r.refs[container] = 0
	r.byRef[0] = container
	return r
}

// Container returns the mirror root, ref 0 on the wire.
func (r *Recorder) Container() *host.MemNode {
	return r.byRef[0]
}

// Notify returns a channel signalled whenever new ops are buffered.
func (r *Recorder) Notify() <-chan struct{} {
	return r.notify
}

// NodeByRef resolves a wire ref to its mirror node. Unknown refs return nil.
func (r *Recorder) NodeByRef(ref uint64) *host.MemNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byRef[ref]
}

// RefOf returns the wire ref for a node created by this recorder.
func (r *Recorder) RefOf(node host.Node) (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, ok := r.refs[node.(*host.MemNode)]
	return ref, ok
}

// Take drains the buffered ops into a sequenced frame. It returns nil when
// nothing has been recorded since the last call.
func (r *Recorder) Take() *protocol.OpsFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ops) == 0 {
		return nil
	}
	r.seq++
	frame := &protocol.OpsFrame{Seq: r.seq, Ops: r.ops}
	r.ops = nil
	return frame
}

// TakeFrames drains the buffered ops into one or more sequenced frames,
// none of whose payloads exceed maxBytes. Op order is preserved across
// the split.
func (r *Recorder) TakeFrames(maxBytes int) []*protocol.OpsFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ops) == 0 {
		return nil
	}

	var frames []*protocol.OpsFrame
	var cur []protocol.Op
	size := 0
	for _, op := range r.ops {
		opSize := opSizeEstimate(op)
		if len(cur) > 0 && size+opSize > maxBytes {
			r.seq++
			frames = append(frames, &protocol.OpsFrame{Seq: r.seq, Ops: cur})
			cur = nil
			size = 0
		}
		cur = append(cur, op)
		size += opSize
	}
	r.seq++
	frames = append(frames, &protocol.OpsFrame{Seq: r.seq, Ops: cur})
	r.ops = nil
	return frames
}

// opSizeEstimate bounds an op's encoded size from above: opcode, up to
// four varints, two length-prefixed strings.
func opSizeEstimate(op protocol.Op) int {
	return 1 + 4*protocol.MaxVarintLen + 2*protocol.MaxVarintLen +
		len(op.Name) + len(op.Value.Str)
}

// Seq returns the sequence number of the last taken frame.
func (r *Recorder) Seq() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

func (r *Recorder) record(op protocol.Op) {
	r.ops = append(r.ops, op)
	select {
	case r.notify <- struct{}{}:
	default:
	}
}

func (r *Recorder) ref(node host.Node) uint64 {
	return r.refs[node.(*host.MemNode)]
}

// CreateElement implements host.Adapter.
func (r *Recorder) CreateElement(tag string) host.Node {
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.mirror.CreateElement(tag).(*host.MemNode)
	r.nextRef++
	r.refs[node] = r.nextRef
	r.byRef[r.nextRef] = node
	r.record(protocol.NewCreateElementOp(r.nextRef, tag))
	return node
}

// CreateText implements host.Adapter.
func (r *Recorder) CreateText(value string) host.Node {
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.mirror.CreateText(value).(*host.MemNode)
	r.nextRef++
	r.refs[node] = r.nextRef
	r.byRef[r.nextRef] = node
	r.record(protocol.NewCreateTextOp(r.nextRef, value))
	return node
}

// SetAttribute implements host.Adapter.
func (r *Recorder) SetAttribute(node host.Node, name string, value *string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mirror.SetAttribute(node, name, value)
	if value == nil {
		r.record(protocol.NewRemoveAttributeOp(r.ref(node), name))
		return
	}
	r.record(protocol.NewSetAttributeOp(r.ref(node), name, *value))
}

// SetProperty implements host.Adapter.
func (r *Recorder) SetProperty(node host.Node, name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mirror.SetProperty(node, name, value)
	r.record(protocol.NewSetPropertyOp(r.ref(node), name, protocol.PropValueOf(value)))
}

// SetStyleProperty implements host.Adapter.
func (r *Recorder) SetStyleProperty(node host.Node, name string, value *string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mirror.SetStyleProperty(node, name, value)
	if value == nil {
		r.record(protocol.NewRemoveStylePropertyOp(r.ref(node), name))
		return
	}
	r.record(protocol.NewSetStylePropertyOp(r.ref(node), name, *value))
}

// SetTextContent implements host.Adapter.
func (r *Recorder) SetTextContent(node host.Node, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mirror.SetTextContent(node, value)
	r.record(protocol.NewSetTextContentOp(r.ref(node), value))
}

// SetInnerMarkup implements host.Adapter.
func (r *Recorder) SetInnerMarkup(node host.Node, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mirror.SetInnerMarkup(node, value)
	r.record(protocol.NewSetInnerMarkupOp(r.ref(node), value))
}

// AddEventListener implements host.Adapter. The handler runs server-side
// when the client forwards a matching event; the client only needs the
// event type to start forwarding it.
func (r *Recorder) AddEventListener(node host.Node, eventType string, handler host.EventHandler) host.ListenerHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle := r.mirror.AddEventListener(node, eventType, handler)
	r.record(protocol.NewAddEventListenerOp(r.ref(node), eventType, uint64(handle)))
	return handle
}

// RemoveEventListener implements host.Adapter.
func (r *Recorder) RemoveEventListener(node host.Node, eventType string, handle host.ListenerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mirror.RemoveEventListener(node, eventType, handle)
	r.record(protocol.NewRemoveEventListenerOp(r.ref(node), eventType, uint64(handle)))
}

// AppendChild implements host.Adapter.
func (r *Recorder) AppendChild(parent, child host.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mirror.AppendChild(parent, child)
	r.record(protocol.NewAppendChildOp(r.ref(parent), r.ref(child)))
}

// RemoveChild implements host.Adapter.
func (r *Recorder) RemoveChild(parent, child host.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mirror.RemoveChild(parent, child)
	r.record(protocol.NewRemoveChildOp(r.ref(parent), r.ref(child)))
}

// InsertBefore implements host.Adapter.
func (r *Recorder) InsertBefore(parent, child, ref host.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mirror.InsertBefore(parent, child, ref)
	if ref == nil {
		r.record(protocol.NewInsertBeforeOp(r.ref(parent), r.ref(child), 0))
		return
	}
	r.record(protocol.NewInsertBeforeOp(r.ref(parent), r.ref(child), r.ref(ref)))
}
