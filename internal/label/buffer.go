package label

import "sync"

// Buffer is the text rendering backend labels push their state into.
// Rasterization produces the glyph texture for a label id; transforms
// position the rasterized text on screen each frame.
type Buffer interface {
	// GenTextID reserves a new label id in the buffer.
	GenTextID() int

	// Rasterize renders the glyphs for a label id. Called once per
	// label, before the first transform push.
	Rasterize(text string, id int)

	// TransformID updates the screen placement of a label. x and y are
	// pixels from the top-left corner of the viewport; alpha 0 hides
	// the label.
	TransformID(id int, x, y, rotation, alpha float32)

	// ReleaseTextID frees a label id and any state stored for it.
	// Called when the owning tile is evicted.
	ReleaseTextID(id int)
}

// TransformStore is an in-memory Buffer. It records the last pushed
// transform per label id, which is all headless rendering and tests
// need. Safe for concurrent use.
type TransformStore struct {
	mu     sync.Mutex
	nextID int
	texts  map[int]string
	states map[int]Transform
}

// NewTransformStore returns an empty store.
func NewTransformStore() *TransformStore {
	return &TransformStore{
		texts:  make(map[int]string),
		states: make(map[int]Transform),
	}
}

func (s *TransformStore) GenTextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	return id
}

func (s *TransformStore) Rasterize(text string, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[id] = text
}

func (s *TransformStore) TransformID(id int, x, y, rotation, alpha float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = Transform{
		Anchor:   anchorAt(x, y),
		Rotation: rotation,
		Alpha:    alpha,
	}
}

func (s *TransformStore) ReleaseTextID(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.texts, id)
	delete(s.states, id)
}

// Text returns the rasterized string for a label id.
func (s *TransformStore) Text(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.texts[id]
}

// State returns the last transform pushed for a label id.
func (s *TransformStore) State(id int) (Transform, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.states[id]
	return t, ok
}
