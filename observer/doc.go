// Package observer implements the per-key observer registry used by
// property observation.
//
// A Registry records which (owner, handler) pairs want to hear about changes
// to one observable key. Owners are grouped by the identity.Key their
// reference maps to; a nil owner is filed under identity.None. The flattened
// view returned by Members is cached and rebuilt lazily after mutation.
//
//	r := observer.New[Widget, *observer.Func[Widget]](nil, nil)
//	onChange := observer.NewFunc(func(ctx context.Context, w *Widget) error {
//	    return w.Redraw(ctx)
//	})
//	r.Add(widget, onChange)
//
//	err := observer.Notify(ctx, r, func(ctx context.Context, m observer.Member[Widget, *observer.Func[Widget]]) error {
//	    return m.Handler.Call(ctx, m.Owner())
//	})
//
// # Reentrancy
//
// Handlers may call Add and Remove on the registry that is notifying them.
// A slice returned by Members never changes after it is returned, and Notify
// iterates a Clone, so a notification pass always sees the membership as it
// was when the pass began.
//
// # Shared views
//
// Members returns the cached slice itself, not a copy, so repeated reads
// between mutations cost nothing. Assigning to its elements corrupts the
// cache for every later reader. Callers that hand the view to code they do
// not control should range over All instead.
//
// # Lifetimes
//
// The registry holds owners only through weak pointers. Owners that are
// garbage collected without being removed leave their handlers behind with
// a nil Owner until Prune is called.
package observer
