package gfx

// Max vertices a single batch may hold before 16-bit indices would wrap.
const maxBatchVertices = 1 << 16

// Batch is one pending GPU submission: geometry accumulated under a single
// RenderState. Indices are relative to the batch's own vertex array.
type Batch struct {
	Vertices []Vertex
	Indices  []uint16
	State    RenderState
}

// Batcher coalesces a stream of geometry submissions into the minimum
// number of ordered batches. A submission merges into the in-flight batch
// only when its state equals the in-flight batch's state; anything else
// seals the batch and opens a new one. Merging never looks further back
// than the immediately preceding batch, so interleaving two textures
// (A, B, A) yields three batches. That is deliberate; callers depend on
// submission order and count.
type Batcher struct {
	batches []Batch
	open    bool // last element of batches accepts appends
}

func NewBatcher() *Batcher {
	return &Batcher{batches: make([]Batch, 0, 64)}
}

// Submit queues geometry under state. Indices must be local to this
// submission (index 0 = first vertex of verts) and in range; topology
// mismatches and out-of-range indices are caller bugs and panic.
func (b *Batcher) Submit(state RenderState, verts []Vertex, inds []uint16) {
	if len(verts) == 0 {
		return
	}
	validateGeometry(state.Mode, len(verts), inds)

	if b.open {
		cur := &b.batches[len(b.batches)-1]
		if cur.State == state && len(cur.Vertices)+len(verts) <= maxBatchVertices {
			base := uint16(len(cur.Vertices))
			cur.Vertices = append(cur.Vertices, verts...)
			for _, i := range inds {
				cur.Indices = append(cur.Indices, i+base)
			}
			return
		}
	}

	// Seal the in-flight batch (if any) and start a new one. A submission
	// that would overflow the 16-bit index space lands here too: early
	// flush, never wrap.
	b.batches = append(b.batches, Batch{
		Vertices: append(make([]Vertex, 0, len(verts)), verts...),
		Indices:  append(make([]uint16, 0, len(inds)), inds...),
		State:    state,
	})
	b.open = true
}

// Flush seals the in-flight batch unconditionally. Called on camera or
// render-target switches and at the frame boundary.
func (b *Batcher) Flush() { b.open = false }

// Drain seals and returns all accumulated batches in creation order and
// resets the batcher. The returned slice is owned by the caller; batches
// are immutable from here on.
func (b *Batcher) Drain() []Batch {
	b.Flush()
	out := b.batches
	b.batches = make([]Batch, 0, cap(out))
	return out
}

// Len reports the number of batches accumulated so far.
func (b *Batcher) Len() int { return len(b.batches) }

// Batches exposes the pending batches; test/debug use.
func (b *Batcher) Batches() []Batch { return b.batches }

func validateGeometry(mode DrawMode, nverts int, inds []uint16) {
	per := 3
	if mode == Lines {
		per = 2
	}
	if len(inds)%per != 0 {
		panic("gfx: index count does not match draw mode")
	}
	for _, i := range inds {
		if int(i) >= nverts {
			panic("gfx: index out of range for submission")
		}
	}
}
