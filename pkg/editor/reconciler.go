package editor

// Reconciler writes streamed content back into the live document. When a
// selection was captured for the operation, every write targets the span the
// previous write produced, so repeated render steps replace the same logical
// region; otherwise writes replace the whole document.
type Reconciler struct {
	doc      *Document
	selected bool
	current  SelectionRange
}

// NewReconciler builds a reconciler for one enhancement operation.
// selection is nil for whole-document mode.
func NewReconciler(doc *Document, selection *SelectionRange) *Reconciler {
	r := &Reconciler{doc: doc}
	if selection != nil {
		r.selected = true
		r.current = *selection
	}
	return r
}

// Write applies the current rendered content to the document. Safe to call on
// every render step; the final call at stream end uses the same path.
func (r *Reconciler) Write(content string) {
	if !r.selected {
		r.doc.ReplaceAll(content)
		return
	}
	r.current = r.doc.ReplaceRange(r.current.From, r.current.To, content)
}

// Range reports the span currently occupied by the reconciled content.
// Only meaningful in selection mode.
func (r *Reconciler) Range() SelectionRange {
	return r.current
}
