// ScriptedCook is a deterministic headless player: each tick it inspects
// replicated state and submits at most one request through the dispatcher,
// exactly like a remote client would. The CLI uses it to soak the kernel;
// integration tests use it to play full matches.

package kitchen

type ScriptedCook struct {
	Actor ActorID
	Conn  ConnID
}

// NewScriptedCook creates a cook that plays as the given actor.
func NewScriptedCook(actor ActorID, conn ConnID) *ScriptedCook {
	return &ScriptedCook{Actor: actor, Conn: conn}
}

// Step decides one action from observed state. It never mutates the world
// directly; all effects go through the dispatcher and apply next tick.
func (b *ScriptedCook) Step(w *World) {
	cutter := firstProcessing(w, KindCutter)
	cooker := firstProcessing(w, KindCooker)
	plate := firstAssembler(w)
	serving := firstServing(w)
	if cutter == nil || cooker == nil || plate == nil || serving == nil {
		return
	}

	if held := w.HeldBy(b.Actor); held != nil {
		b.placeHeld(w, held, cutter, cooker, plate)
		return
	}

	// Collect finished work before starting anything new.
	for _, ps := range []*ProcessingStation{cooker, cutter} {
		if ps.Phase() == PhaseComplete && ps.lock.CanUse(b.Actor) {
			b.submit(w, Request{Kind: RequestTakeItem, Station: ps.ID()})
			return
		}
	}
	for _, ps := range []*ProcessingStation{cutter, cooker} {
		phase := ps.Phase()
		if (phase == PhaseOccupied || phase == PhaseCancelled) && ps.lock.CanUse(b.Actor) {
			b.submit(w, Request{Kind: RequestStart, Station: ps.ID()})
			return
		}
	}

	orders := w.Orders.Active()
	if len(orders) == 0 {
		return
	}
	recipe, ok := w.Catalog.Recipe(orders[0].RecipeID)
	if !ok {
		return
	}
	for _, order := range orders {
		r, ok := w.Catalog.Recipe(order.RecipeID)
		if ok && w.Validator.ValidateDish(plate.Items(), r) {
			b.submit(w, Request{Kind: RequestServe, Station: serving.ID(), PlateID: plate.ID()})
			return
		}
	}
	if typeID := b.nextMissing(recipe, plate, cutter, cooker); typeID != "" {
		b.submit(w, Request{Kind: RequestDispense, Station: StationID("crate_" + typeID)})
	}
}

// placeHeld routes a carried item to the station it needs next.
func (b *ScriptedCook) placeHeld(w *World, held *ItemInstance, cutter, cooker *ProcessingStation, plate *Assembler) {
	s := held.State()
	switch {
	case s.IsBurned:
		if trash := firstDiscard(w); trash != nil {
			b.submit(w, Request{Kind: RequestDiscardItem, Station: trash.ID(), ItemID: held.ID})
		}
	case held.Type.RequiresCutting && !s.IsCut:
		if cutter.Phase() == PhaseIdle && cutter.lock.CanUse(b.Actor) {
			b.submit(w, Request{Kind: RequestPlaceItem, Station: cutter.ID(), ItemID: held.ID})
		}
	case held.Type.RequiresCooking && !s.IsCooked:
		if cooker.Phase() == PhaseIdle && cooker.lock.CanUse(b.Actor) {
			b.submit(w, Request{Kind: RequestPlaceItem, Station: cooker.ID(), ItemID: held.ID})
		}
	default:
		b.submit(w, Request{Kind: RequestPlateAdd, Station: plate.ID(), ItemID: held.ID})
	}
}

// nextMissing returns the first required type not yet on the plate or in
// flight at a station.
func (b *ScriptedCook) nextMissing(recipe *Recipe, plate *Assembler, cutter, cooker *ProcessingStation) string {
	have := make(map[string]int)
	for _, item := range plate.Items() {
		have[item.State().TypeID]++
	}
	for _, ps := range []*ProcessingStation{cutter, cooker} {
		if item := ps.Item(); item != nil {
			have[item.State().TypeID]++
		}
	}
	need := make(map[string]int)
	for _, required := range recipe.Ingredients {
		need[required.TypeID]++
		if need[required.TypeID] > have[required.TypeID] {
			return required.TypeID
		}
	}
	return ""
}

func (b *ScriptedCook) submit(w *World, req Request) {
	req.ActorID = b.Actor
	req.Sender = b.Conn
	w.Dispatcher.Submit(req)
}

func firstProcessing(w *World, kind StationKind) *ProcessingStation {
	for _, st := range w.StationsByKind(kind) {
		if ps, ok := st.(*ProcessingStation); ok {
			return ps
		}
	}
	return nil
}

func firstAssembler(w *World) *Assembler {
	for _, st := range w.StationsByKind(KindAssembler) {
		if a, ok := st.(*Assembler); ok {
			return a
		}
	}
	return nil
}

func firstServing(w *World) *ServingStation {
	for _, st := range w.StationsByKind(KindServing) {
		if s, ok := st.(*ServingStation); ok {
			return s
		}
	}
	return nil
}

func firstDiscard(w *World) *Discard {
	for _, st := range w.StationsByKind(KindDiscard) {
		if d, ok := st.(*Discard); ok {
			return d
		}
	}
	return nil
}
