//go:build profile

// Package profiler records named spans into a fixed ring and exports
// them as a speedscope "evented" profile. Built only with the profile
// tag; without it every call is a no-op.
package profiler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// Init sizes the span ring. Call once at startup; capacity is in events
// (two per span).
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	ring.init(capacity)
}

// Start opens a span and returns the close func to defer.
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	fid := intern(name)
	open := time.Now().UnixNano()
	ring.push(event{At: open, Frame: fid, Open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < open {
			end = open
		}
		ring.push(event{At: end, Frame: fid, Open: false})
	}
}

// Export writes the recorded spans as a speedscope JSON file in the
// temp directory and returns its path.
func Export() (string, error) {
	evs := ring.snapshot()
	if len(evs) == 0 {
		return "", fmt.Errorf("profiler: no recorded spans")
	}
	path := filepath.Join(os.TempDir(), "kiln.speedscope.json")
	if err := writeSpeedscope(evs, path); err != nil {
		return "", err
	}
	return path, nil
}

// --- event ring ---

type event struct {
	At    int64
	Frame int
	Open  bool
}

type eventRing struct {
	ready atomic.Bool
	size  uint64
	write atomic.Uint64
	evs   []event
}

func (r *eventRing) init(capacity int) {
	r.size = uint64(capacity)
	r.evs = make([]event, r.size)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *eventRing) push(e event) {
	i := r.write.Add(1) - 1
	r.evs[i%r.size] = e
}

// snapshot returns the retained events in write order.
func (r *eventRing) snapshot() []event {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.size {
		start = n - r.size
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.size])
	}
	return out
}

var ring eventRing

// --- span name interner ---

var (
	namesMu sync.Mutex
	names   []string
	nameIdx = map[string]int{}
)

func intern(name string) int {
	namesMu.Lock()
	defer namesMu.Unlock()
	if id, ok := nameIdx[name]; ok {
		return id
	}
	id := len(names)
	nameIdx[name] = id
	names = append(names, name)
	return id
}

// --- speedscope writer ---

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}
type ssShared struct {
	Frames []ssFrame `json:"frames"`
}
type ssFrame struct {
	Name string `json:"name"`
}
type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}
type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // microseconds since first event
	Frame int    `json:"frame"`
}

func writeSpeedscope(evs []event, path string) error {
	namesMu.Lock()
	frames := make([]ssFrame, len(names))
	for i, n := range names {
		frames[i] = ssFrame{Name: n}
	}
	namesMu.Unlock()

	base := evs[0].At
	var endUS, lastUS int64
	out := make([]ssEvent, 0, len(evs)+16)
	stack := make([]int, 0, 64)

	for _, e := range evs {
		atUS := (e.At - base) / 1000
		if atUS < lastUS {
			atUS = lastUS
		}
		if e.Open {
			out = append(out, ssEvent{Type: "O", At: atUS, Frame: e.Frame})
			stack = append(stack, e.Frame)
		} else {
			// unmatched close (open fell off the ring): skip
			if len(stack) == 0 || stack[len(stack)-1] != e.Frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: atUS, Frame: e.Frame})
		}
		lastUS = atUS
		if atUS > endUS {
			endUS = atUS
		}
	}
	// speedscope requires balanced events; close anything still open
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: lastUS, Frame: stack[i]})
	}
	if len(out) == 0 {
		return fmt.Errorf("profiler: no usable spans after filtering")
	}

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:       "evented",
			Name:       "kiln capture",
			Unit:       "microseconds",
			StartValue: 0,
			EndValue:   endUS,
			Events:     out,
		}},
		Exporter: "kiln-profiler",
		Name:     "kiln capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
