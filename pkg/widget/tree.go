package widget

import (
	"sort"

	"github.com/goliatone/go-formwidget/pkg/i18n"
	"github.com/goliatone/go-formwidget/pkg/validation"
)

const weightStep = 100

// AddChild attaches child. It fails when child shares the parent's uid, a
// sibling already uses its uid, it already belongs to another parent, or the
// parent lives inside child's subtree.
func (b *Base) AddChild(child Widget) error {
	return b.attach("add", child, false)
}

// AppendChild attaches child and returns it, panicking on structural errors.
func (b *Base) AppendChild(child Widget) Widget {
	if err := b.AddChild(child); err != nil {
		panic(err)
	}
	return child
}

func (b *Base) attach(op string, child Widget, keepArea bool) error {
	if child == nil || child.Core() == nil {
		return structural(op, b.uid, "", "nil child")
	}
	cb := child.Core()
	if cb == b || cb.uid == b.uid {
		return structural(op, b.uid, cb.uid, "child uid equals parent uid")
	}
	if b.HasChild(cb.uid) {
		return structural(op, b.uid, cb.uid, "duplicate child uid")
	}
	if cb.attached {
		return structural(op, b.uid, cb.uid, "already attached to "+cb.parentUID)
	}
	if isAncestor(child, b) {
		return structural(op, b.uid, cb.uid, "child is an ancestor of parent")
	}

	if !keepArea {
		setFormArea(child, b.formArea)
	}
	cb.parentUID = b.uid
	cb.attached = true

	switch {
	case cb.weight == 0:
		b.lastWeight += weightStep
		cb.weight = b.lastWeight
	case cb.weight > b.lastWeight:
		b.lastWeight = roundUp(cb.weight, weightStep)
	}

	b.nextSeq++
	cb.seq = b.nextSeq
	b.children = append(b.children, child)
	b.sortChildren()
	return nil
}

// isAncestor reports whether b sits in the subtree of w.
func isAncestor(w Widget, b *Base) bool {
	if w.Core() == b {
		return true
	}
	for _, d := range Descendants(w) {
		if d.Core() == b {
			return true
		}
	}
	return false
}

func setFormArea(w Widget, area string) {
	w.Core().formArea = area
	for _, d := range Descendants(w) {
		d.Core().formArea = area
	}
}

func roundUp(n, step int) int {
	if n%step == 0 {
		return n
	}
	return (n/step + 1) * step
}

func (b *Base) sortChildren() {
	sort.SliceStable(b.children, func(i, j int) bool {
		ci, cj := b.children[i].Core(), b.children[j].Core()
		if ci.weight != cj.weight {
			return ci.weight < cj.weight
		}
		return ci.seq < cj.seq
	})
}

// Children returns the children ordered by weight, ties by attachment order.
func (b *Base) Children() []Widget {
	b.sortChildren()
	return append([]Widget(nil), b.children...)
}

// Child returns the direct child with uid.
func (b *Base) Child(uid string) (Widget, bool) {
	for _, c := range b.children {
		if c.Core().uid == uid {
			return c, true
		}
	}
	return nil, false
}

func (b *Base) HasChild(uid string) bool {
	_, ok := b.Child(uid)
	return ok
}

// RemoveChild detaches the child with uid.
func (b *Base) RemoveChild(uid string) error {
	for i, c := range b.children {
		cb := c.Core()
		if cb.uid != uid {
			continue
		}
		b.children = append(b.children[:i:i], b.children[i+1:]...)
		cb.parentUID = ""
		cb.attached = false
		return nil
	}
	return structural("remove", b.uid, uid, "no such child")
}

// ReplaceChild swaps the child oldUID for w. The replacement takes over the
// weight and area of the old child and is marked as replacing it. Every check
// runs before the old child is detached.
func (b *Base) ReplaceChild(oldUID string, w Widget) error {
	old, ok := b.Child(oldUID)
	if !ok {
		return structural("replace", b.uid, oldUID, "no such child")
	}
	if w == nil || w.Core() == nil {
		return structural("replace", b.uid, oldUID, "nil replacement")
	}
	nb, ob := w.Core(), old.Core()
	switch {
	case nb == ob:
		return structural("replace", b.uid, oldUID, "replacement is the same widget")
	case nb.uid == b.uid:
		return structural("replace", b.uid, nb.uid, "child uid equals parent uid")
	case nb.uid != oldUID && b.HasChild(nb.uid):
		return structural("replace", b.uid, nb.uid, "duplicate child uid")
	case nb.attached:
		return structural("replace", b.uid, nb.uid, "already attached to "+nb.parentUID)
	case isAncestor(w, b):
		return structural("replace", b.uid, nb.uid, "child is an ancestor of parent")
	}

	if err := b.RemoveChild(oldUID); err != nil {
		return err
	}
	nb.weight = ob.weight
	nb.replaces = oldUID
	setFormArea(w, ob.formArea)
	return b.attach("replace", w, true)
}

// Descendants flattens the subtree below w in depth-first pre-order. w itself
// is not included.
func Descendants(w Widget) []Widget {
	var out []Widget
	var walk func(Widget)
	walk = func(n Widget) {
		for _, c := range n.Core().Children() {
			out = append(out, c)
			walk(c)
		}
	}
	walk(w)
	return out
}

// Parent resolves the owner of w inside the tree rooted at root.
func Parent(root, w Widget) (Widget, bool) {
	if root == nil || w == nil || !w.Core().attached {
		return nil, false
	}
	target := w.Core()
	for _, n := range append([]Widget{root}, Descendants(root)...) {
		if n.Core().uid != target.parentUID {
			continue
		}
		for _, c := range n.Core().children {
			if c.Core() == target {
				return n, true
			}
		}
	}
	return nil, false
}

// Find returns the first widget with uid in the tree rooted at root,
// including root.
func Find(root Widget, uid string) (Widget, bool) {
	if root == nil {
		return nil, false
	}
	if root.UID() == uid {
		return root, true
	}
	for _, d := range Descendants(root) {
		if d.UID() == uid {
			return d, true
		}
	}
	return nil, false
}

// FieldErrors maps widget names to their first validation failure.
type FieldErrors map[string]*validation.RuleError

// Messages renders every failure through t for locale.
func (fe FieldErrors) Messages(t i18n.Translator, locale string) map[string][]string {
	if len(fe) == 0 {
		return nil
	}
	out := make(map[string][]string, len(fe))
	for name, err := range fe {
		out[name] = []string{err.Message(t, locale)}
	}
	return out
}

// ValidateAll validates root and every descendant, collecting one RuleError
// per widget name. Any other error aborts the walk and is returned as is.
func ValidateAll(root Widget) (FieldErrors, error) {
	fe := FieldErrors{}
	for _, w := range append([]Widget{root}, Descendants(root)...) {
		err := w.Validate()
		if err == nil {
			continue
		}
		ruleErr, ok := validation.AsRuleError(err)
		if !ok {
			return nil, err
		}
		if _, seen := fe[w.Name()]; !seen {
			fe[w.Name()] = ruleErr
		}
	}
	return fe, nil
}

// Submitter is implemented by widgets that react to form submission.
type Submitter interface {
	FormSubmit(formUID string) error
}

// Submit calls FormSubmit on root and its descendants, in tree order, and
// stops at the first error.
func Submit(root Widget, formUID string) error {
	for _, w := range append([]Widget{root}, Descendants(root)...) {
		s, ok := w.(Submitter)
		if !ok {
			continue
		}
		if err := s.FormSubmit(formUID); err != nil {
			return err
		}
	}
	return nil
}
