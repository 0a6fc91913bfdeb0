package optimizer

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/execution/expression"
)

/**
 * JoinGraph indexes the relations referenced by join conditions and the
 * edge (pair of relations) of every condition.
 *
 * Relation indexes follow the order in which relations first appear in
 * the conditions. A later condition over the same pair of relations
 * replaces the earlier one.
 */
type JoinGraph struct {
	relations []string
	indexes   map[string]int
	edges     []SubsetKey // in order of first appearance
	byEdge    map[SubsetKey]*expression.JoinCondition
}

func NewJoinGraph(conditions []*expression.JoinCondition) (*JoinGraph, error) {
	g := &JoinGraph{
		relations: make([]string, 0),
		indexes:   make(map[string]int),
		edges:     make([]SubsetKey, 0),
		byEdge:    make(map[SubsetKey]*expression.JoinCondition),
	}
	for _, cond := range conditions {
		leftTab := cond.GetLhs().GetTableName()
		rightTab := cond.GetRhs().GetTableName()
		if leftTab == rightTab {
			return nil, fmt.Errorf("join condition %s refers to only one relation", cond)
		}
		edge := SingletonKey(g.addRelation(leftTab)).Add(g.addRelation(rightTab))
		if _, exist := g.byEdge[edge]; exist {
			common.ShPrintf(common.WARN, "JoinGraph: %s replaces an earlier condition over the same relations\n", cond)
		} else {
			g.edges = append(g.edges, edge)
		}
		g.byEdge[edge] = cond.Clone()
	}
	if len(g.relations) > common.MaxJoinRelations {
		return nil, pkgerrors.Wrapf(errors.ErrTooManyRelations, "%d relations, at most %d", len(g.relations), common.MaxJoinRelations)
	}
	return g, nil
}

func (g *JoinGraph) addRelation(name string) int {
	if idx, ok := g.indexes[name]; ok {
		return idx
	}
	g.indexes[name] = len(g.relations)
	g.relations = append(g.relations, name)
	return len(g.relations) - 1
}

func (g *JoinGraph) Relations() []string {
	return g.relations
}

func (g *JoinGraph) NumRelations() int {
	return len(g.relations)
}

// IndexOf returns -1 for relations not in the graph
func (g *JoinGraph) IndexOf(name string) int {
	if idx, ok := g.indexes[name]; ok {
		return idx
	}
	return -1
}

func (g *JoinGraph) RelationAt(idx int) string {
	return g.relations[idx]
}

func (g *JoinGraph) KeyOf(names ...string) (SubsetKey, error) {
	ret := SubsetKey(0)
	for _, name := range names {
		idx := g.IndexOf(name)
		if idx < 0 {
			return 0, fmt.Errorf("relation %s is not in the join graph", name)
		}
		ret = ret.Add(idx)
	}
	return ret, nil
}

func (g *JoinGraph) FullKey() SubsetKey {
	return FullKey(len(g.relations))
}

// NamesOf returns names of the members of key
func (g *JoinGraph) NamesOf(key SubsetKey) []string {
	ret := make([]string, 0, key.Size())
	for _, idx := range key.Members() {
		ret = append(ret, g.relations[idx])
	}
	return ret
}

// ConditionExists reports whether some condition joins two members of subset
func (g *JoinGraph) ConditionExists(subset SubsetKey) bool {
	for _, edge := range g.edges {
		if edge.IsSubsetOf(subset) {
			return true
		}
	}
	return false
}

/**
 * FindConditionBetween returns the condition connecting original and the
 * single relation added. The returned condition is a copy whose rhs
 * belongs to added. nil is returned when no condition connects them.
 * More than one connecting condition is an OptimizerInvariantError.
 */
func (g *JoinGraph) FindConditionBetween(original SubsetKey, added SubsetKey) (*expression.JoinCondition, error) {
	combined := original.Union(added)
	var ret *expression.JoinCondition
	found := 0
	for _, edge := range g.edges {
		if !edge.IsSubsetOf(combined) || edge.IsSubsetOf(original) {
			continue
		}
		found++
		if ret != nil {
			continue
		}
		ret = g.byEdge[edge].Clone()
		if ret.GetRhs().GetTableName() != g.relations[added.First()] {
			ret.Flip()
		}
	}
	if found > 1 {
		return nil, errors.NewOptimizerInvariantError(fmt.Sprint(g.NamesOf(original)), fmt.Sprint(g.NamesOf(added)), found)
	}
	return ret, nil
}
