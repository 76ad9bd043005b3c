package selector

import "sort"

// OutcomeKind discriminates the result of handling one input event.
type OutcomeKind uint8

const (
	Pending OutcomeKind = iota
	Confirmed
	Cancelled
)

// ConfirmedSentinel is the index returned by Confirmed when the item list
// is empty; callers interpret it as "create with the current query".
const ConfirmedSentinel = -1

// Outcome is the result of Selector.HandleKey / HandleMouse.
type Outcome struct {
	Kind  OutcomeKind
	Index int
}

// Key mirrors the small subset of key-event shape the selector cares
// about; callers translate their platform key event into this before
// calling HandleKey.
type Key struct {
	Rune      rune
	Special   SpecialKey
	IsControl bool
	HasCmd    bool
}

type SpecialKey uint8

const (
	KeyNone SpecialKey = iota
	KeyUp
	KeyDown
	KeyReturn
	KeyEscape
	KeyBackspace
)

// MouseKind discriminates a mouse event handled by HandleMouse.
type MouseKind uint8

const (
	MouseDown MouseKind = iota
	MouseUp
	MouseMoved
)

// Selector is a type-to-filter list widget: typing narrows the item list
// to whatever fuzzy-matches the query, ranked best match first, using
// this package's fzf-derived Query scorer. Selected/HandleKey/HandleMouse
// all operate over the filtered view, not the source list.
type Selector struct {
	items    []string
	visible  []string // filtered+ranked subset of items; what Items() returns
	indices  []int    // indices[i] = index into items for visible[i]
	selected int      // index into visible
	query    string
}

type scoredItem struct {
	index int
	score int
}

// NewSelector returns an empty selector.
func NewSelector() *Selector {
	return &Selector{}
}

// SetItems replaces the source item list and re-applies the current
// query, clamping the selected index to the new filtered result.
func (s *Selector) SetItems(items []string) {
	s.items = items
	s.refilter()
}

// refilter rebuilds visible/indices from items and query, ranking matches
// by descending score (ties broken by original order), and clamps
// selected into the new visible range.
func (s *Selector) refilter() {
	q := ParseQuery(s.query)
	s.visible = s.visible[:0]
	s.indices = s.indices[:0]

	if q.Empty() {
		for i, item := range s.items {
			s.visible = append(s.visible, item)
			s.indices = append(s.indices, i)
		}
	} else {
		matches := make([]scoredItem, 0, len(s.items))
		for i, item := range s.items {
			if score, ok := q.Score(item); ok {
				matches = append(matches, scoredItem{index: i, score: score})
			}
		}
		sort.Slice(matches, func(a, b int) bool {
			if matches[a].score != matches[b].score {
				return matches[a].score > matches[b].score
			}
			return matches[a].index < matches[b].index
		})
		for _, m := range matches {
			s.visible = append(s.visible, s.items[m.index])
			s.indices = append(s.indices, m.index)
		}
	}

	if s.selected >= len(s.visible) {
		s.selected = len(s.visible) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// Items returns the currently visible (filtered and ranked) items.
func (s *Selector) Items() []string { return s.visible }

// Selected returns the currently selected index into Items().
func (s *Selector) Selected() int { return s.selected }

// OriginalIndex maps an index into Items() back to the corresponding
// index in the unfiltered list passed to SetItems. Returns -1 if out of
// range.
func (s *Selector) OriginalIndex(visibleIndex int) int {
	if visibleIndex < 0 || visibleIndex >= len(s.indices) {
		return -1
	}
	return s.indices[visibleIndex]
}

// Query returns the current filter text.
func (s *Selector) Query() string { return s.query }

// HandleKey processes one key event.
func (s *Selector) HandleKey(k Key) Outcome {
	switch k.Special {
	case KeyUp:
		if s.selected > 0 {
			s.selected--
		}
		return Outcome{Kind: Pending}
	case KeyDown:
		if len(s.visible) > 0 && s.selected < len(s.visible)-1 {
			s.selected++
		}
		return Outcome{Kind: Pending}
	case KeyReturn:
		if len(s.visible) == 0 {
			return Outcome{Kind: Confirmed, Index: ConfirmedSentinel}
		}
		return Outcome{Kind: Confirmed, Index: s.selected}
	case KeyEscape:
		return Outcome{Kind: Cancelled}
	case KeyBackspace:
		if !k.HasCmd && !k.IsControl {
			s.popQueryChar()
		}
		return Outcome{Kind: Pending}
	}

	if k.Rune != 0 && !k.HasCmd && !k.IsControl && isPrintable(k.Rune) {
		s.query += string(k.Rune)
		s.selected = 0
		s.refilter()
		return Outcome{Kind: Pending}
	}
	return Outcome{Kind: Pending}
}

func (s *Selector) popQueryChar() {
	if s.query == "" {
		return
	}
	r := []rune(s.query)
	s.query = string(r[:len(r)-1])
	s.selected = 0
	s.refilter()
}

func isPrintable(r rune) bool {
	return r >= 0x20 && r != 0x7F
}

// HandleMouse processes one mouse event at pixel position pos within a
// list whose rows are itemHeight tall, starting at listOriginY.
func (s *Selector) HandleMouse(posY float64, kind MouseKind, itemHeight, listOriginY float64) Outcome {
	if posY < listOriginY || len(s.visible) == 0 {
		return Outcome{Kind: Pending}
	}
	row := int((posY - listOriginY) / itemHeight)
	if row < 0 || row >= len(s.visible) {
		return Outcome{Kind: Pending}
	}

	switch kind {
	case MouseDown:
		s.selected = row
		return Outcome{Kind: Pending}
	case MouseUp:
		if row == s.selected {
			return Outcome{Kind: Confirmed, Index: s.selected}
		}
		s.selected = row
		return Outcome{Kind: Pending}
	default: // MouseMoved
		return Outcome{Kind: Pending}
	}
}
