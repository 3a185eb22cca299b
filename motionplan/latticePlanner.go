package motionplan

import (
	"container/heap"

	"github.com/golang/geo/r2"

	"go.viam.com/latticeplan/kinematics"
	"go.viam.com/latticeplan/logging"
	"go.viam.com/latticeplan/spatialmath"
)

// SearchState is the state of a lattice search.
type SearchState int

const (
	// StateRunning means the frontier still has entries to pop.
	StateRunning SearchState = iota
	// StateSucceeded means a popped node was within the goal radius.
	StateSucceeded
	// StateFailed means the frontier ran empty before the goal was reached.
	StateFailed
)

func (s SearchState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// SearchStats counts what a search did.
type SearchStats struct {
	// Expansions is the number of nodes whose successors were generated.
	Expansions int `json:"expansions"`
	// Pushes is the number of frontier insertions, the start included.
	Pushes int `json:"pushes"`
	// StalePops is the number of popped entries whose key was already closed.
	StalePops int `json:"stale_pops"`
	// Infeasible is the number of successors whose end point failed the workspace check.
	Infeasible int `json:"infeasible"`
	// Closed is the number of successors dropped because their key was already expanded.
	Closed int `json:"closed"`
	// NotImproved is the number of successors dropped because their key already held a node
	// at least as cheap.
	NotImproved int `json:"not_improved"`
}

// LatticePlanner searches the state lattice spanned by a differential drive base's motion
// primitives inside a static workspace. A planner holds no per-search state; each Plan or
// NewSearch call owns its own arena, tables, frontier and curve buffer.
type LatticePlanner struct {
	ws     kinematics.Checker
	drive  kinematics.DiffDrive
	logger logging.Logger
}

// NewLatticePlanner returns a planner for the given workspace and base.
func NewLatticePlanner(ws kinematics.Checker, drive kinematics.DiffDrive, logger logging.Logger) (*LatticePlanner, error) {
	if err := drive.Validate(); err != nil {
		return nil, err
	}
	return &LatticePlanner{ws: ws, drive: drive, logger: logger}, nil
}

// Plan runs a search to completion. Not reaching the goal is reported through
// PlanResult.Status, not as an error; errors are only returned for malformed requests.
//
// The search is not preemptible. Callers that need a deadline should drive NewSearch
// themselves and stop calling Step.
func (mp *LatticePlanner) Plan(req *PlanRequest) (*PlanResult, error) {
	search, err := mp.NewSearch(req)
	if err != nil {
		return nil, err
	}
	mp.logger.Infow("planning", "start", req.Start.String(), "goal", req.Goal.String(),
		"clearance", req.Clearance, "rpm1", req.SpeedA, "rpm2", req.SpeedB)

	for search.Step() == StateRunning {
	}
	return search.Result()
}

// Search is one in-progress lattice search.
type Search struct {
	planner    *LatticePlanner
	goal       r2.Point
	goalRadius float64
	primitives []kinematics.Primitive

	frontier frontier
	accepted map[RegionKey]int
	visited  map[RegionKey]int

	result *PlanResult
}

// NewSearch validates the request and returns a search seeded with the start node.
func (mp *LatticePlanner) NewSearch(req *PlanRequest) (*Search, error) {
	if req == nil {
		return nil, newBadRequestError("nil request")
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	start := Node{
		Parent:    noParent,
		Cost2Come: 0,
		Cost2Go:   spatialmath.Distance(req.Start.Point(), req.Goal),
		Clearance: req.Clearance,
		Pose:      spatialmath.NewPose(req.Start.X, req.Start.Y, req.Start.Theta),
	}
	s := &Search{
		planner:    mp,
		goal:       req.Goal,
		goalRadius: req.goalRadius(),
		primitives: kinematics.Primitives(req.SpeedA, req.SpeedB),
		accepted:   map[RegionKey]int{},
		visited:    map[RegionKey]int{},
		result: &PlanResult{
			Status:   StateRunning,
			Terminal: noParent,
			Goal:     req.Goal,
			Nodes:    []Node{start},
		},
	}
	heap.Init(&s.frontier)
	s.frontier.push(0, start.Cost())
	s.accepted[KeyOf(start.Pose)] = 0
	s.result.Stats.Pushes = 1
	return s, nil
}

// State returns the current state of the search.
func (s *Search) State() SearchState {
	return s.result.Status
}

// Step pops frontier entries until one node has been goal tested and, if it is not the goal,
// expanded. Stale entries whose key is already closed are dropped along the way. It returns the
// resulting state; once the search has finished further calls do nothing.
func (s *Search) Step() SearchState {
	if s.result.Status != StateRunning {
		return s.result.Status
	}

	for s.frontier.Len() > 0 {
		idx := s.frontier.pop()
		current := s.result.Nodes[idx]
		key := KeyOf(current.Pose)
		if _, closed := s.visited[key]; closed {
			s.result.Stats.StalePops++
			continue
		}

		if s.reachedGoal(current.Pose) {
			s.result.Status = StateSucceeded
			s.result.Terminal = idx
			s.finish()
			return s.result.Status
		}

		s.expand(idx, current)
		s.visited[key] = idx
		return s.result.Status
	}

	s.result.Status = StateFailed
	s.finish()
	return s.result.Status
}

// Result returns the result of a finished search.
func (s *Search) Result() (*PlanResult, error) {
	if s.result.Status == StateRunning {
		return nil, ErrSearchRunning
	}
	return s.result, nil
}

func (s *Search) reachedGoal(p spatialmath.Pose) bool {
	dx := p.X - s.goal.X
	dy := p.Y - s.goal.Y
	return dx*dx+dy*dy < s.goalRadius*s.goalRadius
}

func (s *Search) expand(idx int, current Node) {
	mp := s.planner
	s.result.Stats.Expansions++

	for _, prim := range s.primitives {
		step := mp.drive.Integrate(current.Pose, prim, current.Clearance, mp.ws)
		key := KeyOf(step.End)

		// The integrator keeps the substep that failed, so the end point is rechecked here.
		if !mp.ws.Feasible(step.End.Point(), current.Clearance) {
			s.result.Stats.Infeasible++
			continue
		}
		if _, closed := s.visited[key]; closed {
			s.result.Stats.Closed++
			continue
		}

		candidate := Node{
			Parent:    idx,
			Cost2Come: current.Cost2Come + step.Length,
			Cost2Go:   spatialmath.Distance(step.End.Point(), s.goal),
			Clearance: current.Clearance,
			Pose:      step.End,
		}
		if existing, ok := s.accepted[key]; ok && s.result.Nodes[existing].Cost() <= candidate.Cost() {
			s.result.Stats.NotImproved++
			continue
		}

		s.result.Nodes = append(s.result.Nodes, candidate)
		newIdx := len(s.result.Nodes) - 1
		s.accepted[key] = newIdx
		s.frontier.push(newIdx, candidate.Cost())
		s.result.Stats.Pushes++
		s.result.Curves = append(s.result.Curves, step.Segments...)
	}
}

func (s *Search) finish() {
	stats := s.result.Stats
	s.planner.logger.Debugw("search finished",
		"status", s.result.Status.String(),
		"expansions", stats.Expansions,
		"pushes", stats.Pushes,
		"stale_pops", stats.StalePops,
		"infeasible", stats.Infeasible,
		"closed", stats.Closed,
		"not_improved", stats.NotImproved,
		"nodes", len(s.result.Nodes),
		"segments", len(s.result.Curves),
	)
	if s.result.Status == StateSucceeded {
		terminal := s.result.Nodes[s.result.Terminal]
		s.planner.logger.Infow("path found", "cost", terminal.Cost2Come, "end", terminal.Pose.String())
	} else {
		s.planner.logger.Infow("no path found", "expansions", stats.Expansions)
	}
}
