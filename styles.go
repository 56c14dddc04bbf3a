package editorcore

import "sort"

// DecorationLayerId distinguishes independent sources of non-style visual
// decorations (e.g. bookmarks, breakpoints) the same way StyleLayerId does
// for styles.
type DecorationLayerId uint32

// StyleProvider supplies the style ids applied to a single character
// offset. The snapshot generator queries it once per cell.
type StyleProvider interface {
	StylesAt(charOffset int) []StyleId
}

// StyleLayers owns the base interval tree plus one named interval tree per
// StyleLayerId, and merges them into a single deduplicated id list per
// query. Layers are extensible at runtime; only the built-in ids
// (StyleLayerSemanticTokens, ...) are guaranteed stable across releases.
type StyleLayers struct {
	base   *IntervalTree
	layers map[StyleLayerId]*IntervalTree
}

// NewStyleLayers creates an empty base tree with no named layers.
func NewStyleLayers() *StyleLayers {
	return &StyleLayers{base: NewIntervalTree(), layers: make(map[StyleLayerId]*IntervalTree)}
}

// Base returns the base interval tree, shared by every caller.
func (s *StyleLayers) Base() *IntervalTree { return s.base }

// Layer returns the named layer's tree, creating it empty on first access.
func (s *StyleLayers) Layer(id StyleLayerId) *IntervalTree {
	t, ok := s.layers[id]
	if !ok {
		t = NewIntervalTree()
		s.layers[id] = t
	}
	return t
}

// ReplaceLayer discards a layer's existing intervals and installs a new set,
// skipping any interval that isn't validated and non-empty (Start < End).
func (s *StyleLayers) ReplaceLayer(id StyleLayerId, intervals []Interval) {
	t := NewIntervalTree()
	for _, iv := range intervals {
		if iv.Start >= iv.End {
			continue
		}
		t.Insert(iv)
	}
	s.layers[id] = t
}

// ClearLayer empties a named layer, leaving the base tree and other layers
// untouched.
func (s *StyleLayers) ClearLayer(id StyleLayerId) {
	if t, ok := s.layers[id]; ok {
		t.Clear()
	}
}

// StylesAt merges the base tree and every style layer's intervals at
// charOffset into a single stable-sorted, deduplicated id list.
func (s *StyleLayers) StylesAt(charOffset int) []StyleId {
	var ids []StyleId
	for _, iv := range s.base.QueryPoint(charOffset) {
		ids = append(ids, iv.StyleID)
	}

	layerIDs := make([]StyleLayerId, 0, len(s.layers))
	for id := range s.layers {
		layerIDs = append(layerIDs, id)
	}
	sort.Slice(layerIDs, func(i, j int) bool { return layerIDs[i] < layerIDs[j] })

	for _, lid := range layerIDs {
		for _, iv := range s.layers[lid].QueryPoint(charOffset) {
			ids = append(ids, iv.StyleID)
		}
	}
	return dedupeStyleIDs(ids)
}

// UpdateForInsertion shifts every tree (base and all layers) to account for
// inserting delta characters at pos.
func (s *StyleLayers) UpdateForInsertion(pos, delta int) {
	s.base.UpdateForInsertion(pos, delta)
	for _, t := range s.layers {
		t.UpdateForInsertion(pos, delta)
	}
}

// UpdateForDeletion shifts every tree (base and all layers) to account for
// deleting [start, end).
func (s *StyleLayers) UpdateForDeletion(start, end int) {
	s.base.UpdateForDeletion(start, end)
	for _, t := range s.layers {
		t.UpdateForDeletion(start, end)
	}
}
