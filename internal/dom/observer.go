package dom

// IntersectionEntry describes a target crossing the observer threshold
type IntersectionEntry struct {
	Target         *Element
	Ratio          float64
	IsIntersecting bool
}

// IntersectionCallback receives the entries of one check
type IntersectionCallback func(entries []IntersectionEntry, obs *IntersectionObserver)

// IntersectionObserver reports when observed elements cross a visibility threshold
type IntersectionObserver struct {
	doc       *Document
	threshold float64
	callback  IntersectionCallback
	targets   []*Element
	state     map[*Element]bool // last reported intersecting state
}

// NewIntersectionObserver creates an observer with the given visible-fraction
// threshold. ok is false when the host does not support observation.
func (d *Document) NewIntersectionObserver(threshold float64, cb IntersectionCallback) (*IntersectionObserver, bool) {
	if !d.intersectionSupported {
		return nil, false
	}
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 1 {
		threshold = 1
	}
	obs := &IntersectionObserver{
		doc:       d,
		threshold: threshold,
		callback:  cb,
		state:     make(map[*Element]bool),
	}
	d.observers[obs] = struct{}{}
	return obs, true
}

// Observe starts watching el and delivers its initial state
func (o *IntersectionObserver) Observe(el *Element) {
	if el == nil || o.doc == nil {
		return
	}
	if _, ok := o.state[el]; ok {
		return
	}
	o.targets = append(o.targets, el)
	o.state[el] = false

	if entry, ok := o.entryFor(el, true); ok {
		o.callback([]IntersectionEntry{entry}, o)
	}
}

// Unobserve stops watching el
func (o *IntersectionObserver) Unobserve(el *Element) {
	if _, ok := o.state[el]; !ok {
		return
	}
	delete(o.state, el)
	for i, t := range o.targets {
		if t == el {
			o.targets = append(o.targets[:i:i], o.targets[i+1:]...)
			break
		}
	}
}

// Disconnect stops watching every target and detaches from the document
func (o *IntersectionObserver) Disconnect() {
	if o.doc == nil {
		return
	}
	o.targets = nil
	o.state = make(map[*Element]bool)
	delete(o.doc.observers, o)
	o.doc = nil
}

// Len returns the number of observed targets
func (o *IntersectionObserver) Len() int { return len(o.targets) }

// Observing reports whether el is observed
func (o *IntersectionObserver) Observing(el *Element) bool {
	_, ok := o.state[el]
	return ok
}

func (o *IntersectionObserver) check() {
	if o.doc == nil {
		return
	}
	var entries []IntersectionEntry
	for _, el := range append([]*Element(nil), o.targets...) {
		if entry, ok := o.entryFor(el, false); ok {
			entries = append(entries, entry)
		}
	}
	if len(entries) > 0 {
		o.callback(entries, o)
	}
}

// entryFor computes el's state and returns an entry when it changed,
// or unconditionally for the initial observation.
func (o *IntersectionObserver) entryFor(el *Element, initial bool) (IntersectionEntry, bool) {
	ratio := o.doc.VisibleFraction(el)
	intersecting := ratio > 0 && ratio >= o.threshold
	if !initial && o.state[el] == intersecting {
		return IntersectionEntry{}, false
	}
	o.state[el] = intersecting
	return IntersectionEntry{Target: el, Ratio: ratio, IsIntersecting: intersecting}, true
}
