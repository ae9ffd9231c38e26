package scheduler

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"labrotation/internal/logger"
	"labrotation/pkg/model"
)

// Scheduler assigns every lab in a catalog to (day, slot, room, trainees)
// combinations over the rotation window. It is a heuristic satisficer: each
// lab is attempted once through an escalating list of strategies and the run
// always completes with whatever sessions could be committed.
type Scheduler struct {
	cfg *Configuration
	log logger.Logger
	rng *rand.Rand
}

// Result is the output of one scheduling run.
type Result struct {
	Sessions []*model.ScheduledSession
	Report   *model.CompletionReport
}

// New creates a Scheduler. A nil cfg falls back to the defaults, a nil log
// discards the diagnostic trail, and a nil rng is seeded from the clock.
// Inject a fixed-seed rng for reproducible schedules.
func New(cfg *Configuration, log logger.Logger, rng *rand.Rand) *Scheduler {
	if cfg == nil {
		cfg = NewDefaultConfiguration()
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scheduler{cfg: cfg, log: log, rng: rng}
}

// Run validates the catalog and executes one scheduling run.
func (s *Scheduler) Run(cat *Catalog) (*Result, error) {
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	mode := s.cfg.Mode(cat.TotalTrainees)
	s.log.Infof("scheduling run: %d trainees, %d labs, %d rooms, mode %s",
		cat.TotalTrainees, len(cat.Labs), len(cat.Rooms), mode)

	r := &run{
		cfg:       s.cfg,
		log:       s.log,
		rng:       s.rng,
		cat:       cat,
		durations: cat.Durations(),
		rooms:     NewRoomOccupancy(cat.Rooms),
		assigned:  NewAssignmentIndex(cat.TotalTrainees),
		settledBy: make(map[model.LabID]model.StrategyName),
	}

	switch mode {
	case model.ModeSmallRoster:
		r.scheduleSmallRoster()
	case model.ModeFixedGroups:
		r.fixedMode = true
		r.groups = FixedGroups(s.cfg, cat.TotalTrainees)
		r.groupPlaced = make(map[string]bool)
		r.logGroups()
		r.scheduleEscalating()
	default:
		r.scheduleEscalating()
		r.balance()
	}

	report := r.evaluate(mode)
	return &Result{Sessions: r.sessions, Report: report}, nil
}

// run owns the mutable state of a single scheduling request. The occupancy
// indexes are passed through the strategies explicitly via this struct and
// discarded at run end.
type run struct {
	cfg       *Configuration
	log       logger.Logger
	rng       *rand.Rand
	cat       *Catalog
	durations []int

	sessions []*model.ScheduledSession
	rooms    RoomOccupancy
	assigned AssignmentIndex

	fixedMode   bool
	groups      map[model.CapacityClass][]model.Group
	groupPlaced map[string]bool

	settledBy map[model.LabID]model.StrategyName
}

// scheduleEscalating runs every lab through the ordered strategy list. A lab
// is attempted exactly once; there is no transition back once settled.
func (r *run) scheduleEscalating() {
	strategies := []Strategy{standardStrategy{}, flexibleStrategy{}, emergencyStrategy{}}
	for _, lab := range r.orderedLabs() {
		settled := false
		for _, st := range strategies {
			r.log.Infof("lab %q (%s): attempting %s strategy", lab.Name, lab.Class, st.Name())
			if st.Schedule(r, lab) {
				r.settledBy[lab.ID] = st.Name()
				r.log.Infof("lab %q settled by %s strategy", lab.Name, st.Name())
				settled = true
				break
			}
			r.log.Warnf("lab %q: %s strategy failed, escalating", lab.Name, st.Name())
		}
		if !settled {
			r.settledBy[lab.ID] = model.StrategyNone
			r.log.Warnf("lab %q could not be scheduled by any strategy", lab.Name)
		}
	}
}

// scheduleSmallRoster handles rosters of five or fewer trainees: everyone
// forms one group and each lab runs exactly once, one lab per rotation day in
// catalog order, anchored at day opening with its exact duration.
func (r *run) scheduleSmallRoster() {
	all := make([]int, r.cat.TotalTrainees)
	for i := range all {
		all[i] = i + 1
	}
	day := 0
	for _, lab := range r.cat.Labs {
		if day >= r.cfg.RotationDays {
			break
		}
		var room *model.Room
		for _, rm := range r.cat.Rooms {
			if lab.RoomAllowed(rm.Name) {
				room = rm
				break
			}
		}
		slot := model.TimeSlot{Day: day, Start: r.cfg.DayStart, End: r.cfg.DayStart + lab.Duration}
		r.commit(model.StrategyStandard, lab, room, slot, all)
		r.settledBy[lab.ID] = model.StrategyStandard
		day++
	}
}

// orderedLabs returns the processing order: hardest-to-place first, and
// standard-class labs before reduced-class ones so the late rotation days
// stay open for the reduced labs. Fixed-group mode keeps catalog order.
func (r *run) orderedLabs() []*model.Lab {
	if r.fixedMode {
		return r.cat.Labs
	}
	labs := make([]*model.Lab, len(r.cat.Labs))
	copy(labs, r.cat.Labs)
	sort.SliceStable(labs, func(i, j int) bool {
		return complexityScore(labs[i]) > complexityScore(labs[j])
	})
	ordered := make([]*model.Lab, 0, len(labs))
	for _, l := range labs {
		if !l.Reduced() {
			ordered = append(ordered, l)
		}
	}
	for _, l := range labs {
		if l.Reduced() {
			ordered = append(ordered, l)
		}
	}
	return ordered
}

// complexityScore ranks how constrained a lab is: longer duration, fewer
// eligible rooms and a narrower group-size band all raise the score.
func complexityScore(l *model.Lab) float64 {
	score := float64(l.Duration) / 60
	score -= float64(len(l.EligibleRooms))
	score -= float64(l.MaxTrainees - l.MinTrainees)
	if l.Reduced() {
		score += 5
	}
	return score
}

// commit books a session and updates both occupancy indexes.
func (r *run) commit(strategy model.StrategyName, lab *model.Lab, room *model.Room, slot model.TimeSlot, trainees []int) *model.ScheduledSession {
	s := &model.ScheduledSession{
		Lab:      lab,
		Room:     room,
		Slot:     slot,
		Trainees: append([]int(nil), trainees...),
		Strategy: strategy,
	}
	r.sessions = append(r.sessions, s)
	for _, t := range trainees {
		r.assigned.Assign(t, lab.ID)
	}
	r.rooms.Book(room.Name, lab.ID, slot)
	r.log.Debugw("session committed", map[string]any{
		"lab":      lab.Name,
		"room":     room.Name,
		"slot":     slot.String(),
		"trainees": len(trainees),
		"strategy": string(strategy),
	})
	return s
}

// candidateSlots returns the slot catalog for one day.
func (r *run) candidateSlots(day int) []model.TimeSlot {
	return CandidateSlots(r.cfg, day, r.durations)
}

// availableRooms returns the lab's eligible rooms that are free for the
// slot, in catalog order.
func (r *run) availableRooms(lab *model.Lab, slot model.TimeSlot) []*model.Room {
	var out []*model.Room
	for _, rm := range r.cat.Rooms {
		if lab.RoomAllowed(rm.Name) && r.rooms.Available(rm.Name, slot) {
			out = append(out, rm)
		}
	}
	return out
}

// traineeFree reports whether the trainee has no committed session
// overlapping the slot.
func (r *run) traineeFree(id int, slot model.TimeSlot) bool {
	for _, s := range r.sessions {
		if !slot.Overlaps(s.Slot) {
			continue
		}
		for _, t := range s.Trainees {
			if t == id {
				return false
			}
		}
	}
	return true
}

// availableFrom filters the pool down to trainees free during the slot,
// preserving pool order.
func (r *run) availableFrom(pool []int, slot model.TimeSlot) []int {
	var out []int
	for _, id := range pool {
		if r.traineeFree(id, slot) {
			out = append(out, id)
		}
	}
	return out
}

// poolFor returns the trainees not yet covered for the lab, in id order.
func (r *run) poolFor(lab *model.Lab) []int {
	var out []int
	for id := 1; id <= r.cat.TotalTrainees; id++ {
		if !r.assigned.Has(id, lab.ID) {
			out = append(out, id)
		}
	}
	return out
}

// groupsFor returns the fixed groups applicable to the lab's capacity class.
func (r *run) groupsFor(lab *model.Lab) []model.Group {
	return r.groups[lab.Class]
}

// shuffledDays returns a random permutation of the rotation days. Reduced
// labs get the late half of the rotation first.
func (r *run) shuffledDays(lab *model.Lab) []int {
	days := r.rng.Perm(r.cfg.RotationDays)
	if !lab.Reduced() {
		return days
	}
	half := r.cfg.RotationDays / 2
	ordered := make([]int, 0, len(days))
	for _, d := range days {
		if d >= half {
			ordered = append(ordered, d)
		}
	}
	for _, d := range days {
		if d < half {
			ordered = append(ordered, d)
		}
	}
	return ordered
}

// lateFirstDays returns the deterministic day order used by the flexible
// strategy: the second half of the rotation first, then the first half.
func (r *run) lateFirstDays() []int {
	half := r.cfg.RotationDays / 2
	days := make([]int, 0, r.cfg.RotationDays)
	for d := half; d < r.cfg.RotationDays; d++ {
		days = append(days, d)
	}
	for d := 0; d < half; d++ {
		days = append(days, d)
	}
	return days
}

func (r *run) logGroups() {
	for class, groups := range r.groups {
		for _, g := range groups {
			r.log.Debugw("fixed group", map[string]any{
				"class":    string(class),
				"group":    g.Name,
				"trainees": len(g.Trainees),
			})
		}
	}
}

func removeAll(pool []int, taken []int) []int {
	drop := make(map[int]bool, len(taken))
	for _, t := range taken {
		drop[t] = true
	}
	out := pool[:0]
	for _, id := range pool {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}
