package soundtrack

import "context"

// Transitioner is the part of the controller the bridge drives.
type Transitioner interface {
	TransitionToLevel(seg Segment, level float64)
}

// Bridge feeds gameplay notifications through the classifier into the
// controller. It does no buffering of its own.
type Bridge struct {
	classifier *Classifier
	target     Transitioner
	observe    func(Event, Classification)
}

// NewBridge connects classifier to target.
func NewBridge(classifier *Classifier, target Transitioner) *Bridge {
	return &Bridge{classifier: classifier, target: target}
}

// OnClassified registers fn to see every event and its classification.
// Call it before the bridge starts receiving events.
func (b *Bridge) OnClassified(fn func(Event, Classification)) {
	b.observe = fn
}

// Notify classifies ev and requests the matching transition.
func (b *Bridge) Notify(ev Event) Classification {
	cl := b.classifier.Classify(ev)
	if b.observe != nil {
		b.observe(ev, cl)
	}
	b.target.TransitionToLevel(cl.Segment, cl.Level)
	return cl
}

// Run delivers events in arrival order until ctx is done or events is closed.
func (b *Bridge) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			b.Notify(ev)
		}
	}
}
