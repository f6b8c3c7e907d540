package dispatcher

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/document"
	"github.com/dshills/blockstorm/internal/focus"
	"github.com/dshills/blockstorm/internal/input/key"
	"github.com/dshills/blockstorm/internal/logging"
	"github.com/dshills/blockstorm/internal/menu"
	"github.com/dshills/blockstorm/internal/turn"
)

// Boundary selects one end of the current selection.
type Boundary uint8

const (
	// BoundaryStart is the selection start.
	BoundaryStart Boundary = iota
	// BoundaryEnd is the selection end (the caret when collapsed).
	BoundaryEnd
)

// Surface answers caret and selection queries about rendered blocks.
type Surface interface {
	// Selection returns the selection offsets in the block, in characters.
	// A collapsed selection has start == end.
	Selection(id block.ID) (start, end int)

	// Caret returns the screen position of one end of the selection.
	Caret(id block.ID, b Boundary) menu.Position
}

// DragResult is a completed reorder gesture.
type DragResult struct {
	Source         int
	Destination    int
	HasDestination bool
}

// MenuState is the render state of one block's menus.
type MenuState struct {
	Select menu.View
	Action menu.View
}

// blockState is the editing state the dispatcher keeps per block.
type blockState struct {
	prevKey string
	selectM *menu.SelectMenu
	actionM *menu.ActionMenu
}

func (s *blockState) close() {
	s.selectM.Close()
	s.actionM.Close()
}

// Dispatcher turns input events into document mutations and focus requests.
//
// Every entry point handles one event: at most one Store call and at most
// one focus request, queued for the next turn. Dispatcher is not safe for
// concurrent use; call it from the event loop.
type Dispatcher struct {
	store       *document.Store
	queue       *turn.Queue
	resolver    *focus.Resolver
	listeners   *menu.Listeners
	surface     Surface
	coordinator focus.Coordinator

	config  Config
	logger  *logging.Logger
	metrics *Metrics

	blocks map[block.ID]*blockState
	sub    *document.Subscription
}

// New creates a dispatcher over store. Focus requests and delayed menu
// listeners are scheduled on queue.
func New(store *document.Store, queue *turn.Queue, config Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:     store,
		queue:     queue,
		listeners: menu.NewListeners(),
		config:    config,
		logger:    logging.Nop(),
		blocks:    make(map[block.ID]*blockState),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.WithComponent("dispatcher")
	d.resolver = focus.NewResolver(func(id block.ID) (block.Block, bool) {
		return d.store.Snapshot().Find(id)
	}, d.coordinator)
	d.sub = store.Subscribe(d.prune)
	return d
}

// SetSurface attaches the caret and selection source.
func (d *Dispatcher) SetSurface(s Surface) {
	d.surface = s
}

// SetCoordinator attaches the caret placement target.
func (d *Dispatcher) SetCoordinator(c focus.Coordinator) {
	d.coordinator = c
	d.resolver.SetCoordinator(c)
}

// Store returns the document store.
func (d *Dispatcher) Store() *document.Store {
	return d.store
}

// Listeners returns the dismiss-listener registry.
func (d *Dispatcher) Listeners() *menu.Listeners {
	return d.listeners
}

// Resolver returns the focus resolver.
func (d *Dispatcher) Resolver() *focus.Resolver {
	return d.resolver
}

// Config returns the configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Close closes every menu and stops tracking the store.
func (d *Dispatcher) Close() {
	d.sub.Unsubscribe()
	for id, st := range d.blocks {
		st.close()
		delete(d.blocks, id)
	}
}

// KeyDown handles a key press inside block id.
func (d *Dispatcher) KeyDown(id block.ID, ev key.Event) Result {
	return d.run(IntentKeyDown, func() Result {
		snap := d.store.Snapshot()
		b, found := snap.Find(id)
		if !found {
			return failed(IntentKeyDown, snap, notFound(id))
		}
		st := d.state(id)
		res := noOp(IntentKeyDown, snap)

		if ev.IsRuneKey(d.config.CommandKey) {
			st.selectM.SaveBackup(b.Content)
			res = ok(IntentBackup, snap)
		}

		switch {
		case ev.Is(key.KeyEnter):
			if d.splits(st, ev) {
				res = d.newLine(snap, b)
			}
		case ev.Is(key.KeyBackspace) && d.config.isEmptyLine(b.Content):
			res = d.deleteAtBoundary(snap, id)
		}

		if !ev.Is(key.KeyEnter) {
			st.prevKey = ev.Name()
		}
		return res
	})
}

// splits reports whether an Enter event is a new-line intent.
func (d *Dispatcher) splits(st *blockState, ev key.Event) bool {
	if ev.Composing || st.selectM.IsOpen() {
		return false
	}
	if st.prevKey == d.config.SoftBreakKey.String() {
		return false
	}
	if mod := d.config.softBreakModifier(); mod != key.ModNone && ev.Modifiers.Has(mod) {
		return false
	}
	return true
}

func (d *Dispatcher) newLine(snap *document.Snapshot, b block.Block) Result {
	if d.surface == nil {
		return failed(IntentNewLine, snap, ErrNoSurface)
	}
	pos, _ := d.surface.Selection(b.ID)
	i := snap.IndexOf(b.ID)

	next, err := d.store.SplitAt(b.ID, pos, b.Content, b.Flag)
	if err != nil {
		return failed(IntentNewLine, next, err).consumed()
	}
	target := next.At(i + 1).ID
	req := focus.Start(target)
	if d.config.FocusAfterSplit == PlaceEnd {
		req = focus.End(target)
	}
	return d.focus(ok(IntentNewLine, next).consumed(), req)
}

func (d *Dispatcher) deleteAtBoundary(snap *document.Snapshot, id block.ID) Result {
	i := snap.IndexOf(id)
	next, err := d.store.MergeAt(id)
	if err != nil {
		return failed(IntentDelete, next, err).consumed()
	}
	if next.Revision() == snap.Revision() {
		return noOp(IntentDelete, next).consumed()
	}
	res := ok(IntentDelete, next).consumed()
	if i > 0 {
		res = d.focus(res, focus.End(next.At(i-1).ID))
	}
	return res
}

// KeyUp handles a key release inside block id. Releasing the command key
// opens the block's type-select menu at the caret.
func (d *Dispatcher) KeyUp(id block.ID, ev key.Event) Result {
	return d.run(IntentKeyUp, func() Result {
		snap := d.store.Snapshot()
		if !snap.Contains(id) {
			return failed(IntentKeyUp, snap, notFound(id))
		}
		if !ev.IsRuneKey(d.config.CommandKey) {
			return noOp(IntentKeyUp, snap)
		}
		if d.surface == nil {
			return failed(IntentSelectOpen, snap, ErrNoSurface)
		}
		for other, st := range d.blocks {
			if other != id {
				st.selectM.Close()
			}
		}
		d.state(id).selectM.Open(d.surface.Caret(id, BoundaryEnd))
		return ok(IntentSelectOpen, snap)
	})
}

// SelectTag applies the tag chosen from the type-select menu of block id.
// The content typed since the command key was pressed is discarded.
func (d *Dispatcher) SelectTag(id block.ID, tag block.Tag) Result {
	return d.run(IntentSelectTag, func() Result {
		snap := d.store.Snapshot()
		b, found := snap.Find(id)
		if !found {
			return failed(IntentSelectTag, snap, notFound(id))
		}
		st := d.state(id)
		content, saved := st.selectM.Backup()
		if !saved {
			content = b.Content
		}
		next, err := d.store.ReplaceField(id, document.SetTag(tag).WithContent(content))
		if err != nil {
			return failed(IntentSelectTag, next, err)
		}
		st.selectM.Close()
		return d.focus(ok(IntentSelectTag, next), focus.End(id))
	})
}

// MouseUp handles the end of a pointer gesture inside block id. A
// non-collapsed selection opens the block's action menu.
func (d *Dispatcher) MouseUp(id block.ID) Result {
	return d.run(IntentActionOpen, func() Result {
		snap := d.store.Snapshot()
		if !snap.Contains(id) {
			return failed(IntentActionOpen, snap, notFound(id))
		}
		if d.surface == nil {
			return failed(IntentActionOpen, snap, ErrNoSurface)
		}
		start, end := d.surface.Selection(id)
		if start == end {
			return noOp(IntentActionOpen, snap)
		}
		if end < start {
			start, end = end, start
		}
		anchor := menu.SelectionAnchor(d.surface.Caret(id, BoundaryStart), d.surface.Caret(id, BoundaryEnd))
		d.state(id).actionM.Open(anchor, start, end)
		return ok(IntentActionOpen, snap)
	})
}

// Promote turns the selection captured by block id's action menu into its
// own flagged block.
func (d *Dispatcher) Promote(id block.ID) Result {
	return d.run(IntentPromote, func() Result {
		snap := d.store.Snapshot()
		b, found := snap.Find(id)
		if !found {
			return failed(IntentPromote, snap, notFound(id))
		}
		st := d.state(id)
		if !st.actionM.IsOpen() {
			return noOp(IntentPromote, snap)
		}
		start, end := st.actionM.Selection()
		next, err := d.store.PromoteSelection(id, b.Content, start, end)
		if err != nil {
			return failed(IntentPromote, next, err)
		}
		st.actionM.Close()
		return ok(IntentPromote, next)
	})
}

// Click handles a click anywhere in the document. Every registered dismiss
// listener fires.
func (d *Dispatcher) Click() Result {
	return d.run(IntentClick, func() Result {
		snap := d.store.Snapshot()
		if d.listeners.Dispatch() == 0 {
			return noOp(IntentClick, snap)
		}
		return ok(IntentClick, snap)
	})
}

// DragEnd handles a completed reorder gesture.
func (d *Dispatcher) DragEnd(r DragResult) Result {
	return d.run(IntentReorder, func() Result {
		before := d.store.Snapshot()
		if !r.HasDestination {
			return noOp(IntentReorder, before)
		}
		return changed(IntentReorder, before, d.store.Reorder(r.Source, r.Destination))
	})
}

// Input records content edited by the rendering layer.
func (d *Dispatcher) Input(id block.ID, content string) Result {
	return d.run(IntentInput, func() Result {
		before := d.store.Snapshot()
		next, err := d.store.ReplaceField(id, document.SetContent(content))
		if err != nil {
			return failed(IntentInput, next, err)
		}
		res := changed(IntentInput, before, next)
		if res.Status == StatusOK {
			d.contentChanged(id)
		}
		return res
	})
}

// Paste appends plain text to block id.
func (d *Dispatcher) Paste(id block.ID, text string) Result {
	return d.run(IntentPaste, func() Result {
		before := d.store.Snapshot()
		b, found := before.Find(id)
		if !found {
			return failed(IntentPaste, before, notFound(id))
		}
		if text == "" {
			return noOp(IntentPaste, before).consumed()
		}
		next, err := d.store.ReplaceField(id, document.SetContent(b.Content+text))
		if err != nil {
			return failed(IntentPaste, next, err).consumed()
		}
		d.contentChanged(id)
		return d.focus(changed(IntentPaste, before, next).consumed(), focus.End(id))
	})
}

// Import appends external blocks to the document.
func (d *Dispatcher) Import(items ...block.Block) Result {
	return d.run(IntentImport, func() Result {
		before := d.store.Snapshot()
		return changed(IntentImport, before, d.store.Append(items...))
	})
}

// MenuState returns the render state of block id's menus.
func (d *Dispatcher) MenuState(id block.ID) MenuState {
	st, found := d.blocks[id]
	if !found {
		return MenuState{}
	}
	return MenuState{Select: st.selectM.View(), Action: st.actionM.View()}
}

// state returns the editing state of block id, creating it on first use.
func (d *Dispatcher) state(id block.ID) *blockState {
	if st, found := d.blocks[id]; found {
		return st
	}
	st := &blockState{
		selectM: menu.NewSelectMenu(d.listeners, menu.WithSelectOwner("select:"+id.String())),
		actionM: menu.NewActionMenu(d.listeners, d.queue,
			menu.WithActionOwner("action:"+id.String()),
			menu.WithListenerDelay(d.config.ListenerDelay)),
	}
	d.blocks[id] = st
	return st
}

// contentChanged closes block id's action menu. The selection it captured
// indexes content that no longer exists.
func (d *Dispatcher) contentChanged(id block.ID) {
	if st, found := d.blocks[id]; found && st.actionM.IsOpen() {
		st.actionM.Close()
		d.logger.Debug("closed action menu of edited block %s", id)
	}
}

// prune drops the state of blocks that left the document, closing their
// menus so no listener outlives its block.
func (d *Dispatcher) prune(snap *document.Snapshot) {
	for id, st := range d.blocks {
		if !snap.Contains(id) {
			st.close()
			delete(d.blocks, id)
			d.logger.Debug("pruned state of removed block %s", id)
		}
	}
}

// focus queues req for the next turn and records it on res.
func (d *Dispatcher) focus(res Result, req focus.Request) Result {
	d.queue.Defer(func() {
		if !d.resolver.Apply(req) {
			d.logger.Debug("dropped focus request %s", req)
		}
	})
	return res.withFocus(req)
}

// run executes one intent with panic recovery, logging and metrics.
func (d *Dispatcher) run(intent Intent, fn func() Result) (result Result) {
	start := time.Now()
	defer func() {
		if d.config.RecoverFromPanic {
			if r := recover(); r != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)
				result = failed(intent, d.store.Snapshot(), fmt.Errorf("%w: %s: %v", ErrPanic, intent, r))
				d.logger.Error("panic in %s: %v\n%s", intent, r, stack[:n])
			}
		}
		if result.Intent == "" {
			result.Intent = intent
		}
		d.metrics.RecordDispatch(result.Intent, result.Status, time.Since(start))
		d.log(result)
	}()
	return fn()
}

func (d *Dispatcher) log(r Result) {
	l := d.logger.WithField("intent", r.Intent).WithField("status", r.Status)
	if r.Snapshot != nil {
		l = l.WithField("revision", r.Snapshot.Revision())
	}
	if r.Focus != nil {
		l = l.WithField("focus", r.Focus.String())
	}
	if r.Err != nil {
		l.Warn("%v", r.Err)
		return
	}
	l.Debug("dispatched")
}

func notFound(id block.ID) error {
	return fmt.Errorf("%w: %s", document.ErrBlockNotFound, id)
}
