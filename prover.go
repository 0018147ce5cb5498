package gorewrite

import (
	"container/heap"

	log "github.com/sirupsen/logrus"
)

const (
	SIDE_LHS = 1
	SIDE_RHS = 2
)

func SideName(side int) string {
	if side == SIDE_LHS {
		return "lhs"
	}
	return "rhs"
}

// ProofStep records one rewrite in a derivation: which rule, on which side
// of the equation, at which position, in which orientation, and the side
// term before and after.
type ProofStep struct {
	Rule    string
	Side    int
	Pos     Position
	Forward bool
	Before  *TermPtr
	After   *TermPtr
}

// ProofResult is the outcome of a Prove call. Found is false when the
// frontier or the node budget was exhausted without reaching the goal;
// that is a regular result, not an error.
type ProofResult struct {
	Found         bool
	Steps         []ProofStep
	NodesExplored uint64
}

// CostEstimator orders the frontier; lower cost states are expanded first.
// The estimator is advisory and need not be admissible.
type CostEstimator func(lhs, rhs *TermPtr) uint64

// GoalPredicate decides whether an equation state is terminal.
type GoalPredicate func(lhs, rhs *TermPtr) bool

// SizeCost is the default estimator: combined node count of both sides.
func SizeCost(lhs, rhs *TermPtr) uint64 {
	return lhs.Size() + rhs.Size()
}

// IdentityGoal is the default goal: both sides are the same interned term.
func IdentityGoal(lhs, rhs *TermPtr) bool {
	return lhs == rhs
}

type equationState struct {
	lhs, rhs *TermPtr
	steps    []ProofStep
	cost     uint64
	seq      uint64
}

// frontier is a min-heap on (cost, insertion sequence). The sequence
// tie-break keeps equal-cost states FIFO, which makes the search
// deterministic.
type frontier []*equationState

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*equationState)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return x
}

type visitedKey struct {
	lhs, rhs uint64
}

// Prover searches for a derivation that rewrites an initial equation into
// a goal state, best-first over a frontier of equation states. The prover
// holds the sole write capability on its TermStore for the duration of a
// search; rules, estimator and goal are read-only after configuration.
type Prover struct {
	store    *TermStore
	rules    []*RewriteRule
	maxNodes uint64
	cost     CostEstimator
	goal     GoalPredicate
}

func NewProver(store *TermStore, maxNodes uint64) *Prover {
	return &Prover{
		store:    store,
		maxNodes: maxNodes,
		cost:     SizeCost,
		goal:     IdentityGoal,
	}
}

// AddRule appends a rule; rule order is significant, it breaks ties among
// successor states.
func (p *Prover) AddRule(rule *RewriteRule) {
	p.rules = append(p.rules, rule)
}

func (p *Prover) SetCostEstimator(cost CostEstimator) {
	p.cost = cost
}

func (p *Prover) SetGoal(goal GoalPredicate) {
	p.goal = goal
}

// Prove runs the best-first search from the initial equation (lhs, rhs).
// Successor states are produced by applying every rule, on either side, at
// every subterm position, in every enabled direction. States are
// deduplicated by the composite hash of both sides; the first route to a
// state wins and keeps its history. The search stops at the goal, on
// frontier exhaustion, or after maxNodes expansions.
func (p *Prover) Prove(lhs, rhs *TermPtr) *ProofResult {
	front := &frontier{}
	heap.Init(front)

	visited := make(map[visitedKey]bool)
	explored := uint64(0)
	seq := uint64(0)

	log.Debugf("prove: %s = %s (max %d nodes, %d rules)", lhs, rhs,
		p.maxNodes, len(p.rules))

	heap.Push(front, &equationState{
		lhs:  lhs,
		rhs:  rhs,
		cost: p.cost(lhs, rhs),
	})
	seq += 1

	for front.Len() > 0 && explored < p.maxNodes {
		state := heap.Pop(front).(*equationState)

		key := visitedKey{lhs: state.lhs.Hash(), rhs: state.rhs.Hash()}
		if visited[key] {
			continue
		}
		visited[key] = true
		explored += 1

		if p.goal(state.lhs, state.rhs) {
			log.Debugf("prove: goal after %d nodes, %d steps", explored,
				len(state.steps))
			return &ProofResult{
				Found:         true,
				Steps:         state.steps,
				NodesExplored: explored,
			}
		}

		log.Tracef("prove: expanding cost=%d %s = %s", state.cost, state.lhs,
			state.rhs)

		for _, rule := range p.rules {
			for _, side := range []int{SIDE_LHS, SIDE_RHS} {
				sideTerm := state.lhs
				if side == SIDE_RHS {
					sideTerm = state.rhs
				}
				for _, rw := range rule.AllRewrites(sideTerm, p.store) {
					newLhs, newRhs := state.lhs, state.rhs
					if side == SIDE_LHS {
						newLhs = rw.Term
					} else {
						newRhs = rw.Term
					}

					newKey := visitedKey{lhs: newLhs.Hash(), rhs: newRhs.Hash()}
					if visited[newKey] {
						continue
					}

					steps := make([]ProofStep, len(state.steps), len(state.steps)+1)
					copy(steps, state.steps)
					steps = append(steps, ProofStep{
						Rule:    rule.Name(),
						Side:    side,
						Pos:     rw.Pos,
						Forward: rw.Forward,
						Before:  sideTerm,
						After:   rw.Term,
					})

					heap.Push(front, &equationState{
						lhs:   newLhs,
						rhs:   newRhs,
						steps: steps,
						cost:  p.cost(newLhs, newRhs),
						seq:   seq,
					})
					seq += 1
				}
			}
		}
	}

	log.Debugf("prove: exhausted after %d nodes", explored)
	return &ProofResult{NodesExplored: explored}
}
