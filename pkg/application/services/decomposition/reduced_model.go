package decomposition

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/errors"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/repositories"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/infrastructure/backend"
)

// row is one linear constraint over sparse variable coefficients
type row struct {
	coeffs map[int]float64
	rhs    float64
}

// ReducedModel is the small LP the decomposition solves each iteration.
// Variable layout is fixed at build time: utilization variables first,
// then flow variables (major routes, then primary supplies), then one
// demand-slack variable per constrained demand center. The model is built
// once per solve and only its warm-start hints change across iterations.
type ReducedModel struct {
	core *entities.CoreVariableSet

	flowEdges []entities.EdgeKey
	flowIndex map[entities.EdgeKey]int

	numUtil  int
	numFlow  int
	numSlack int

	slackCenters []string

	objective []float64
	ineqRows  []row
	eqRows    []row

	warmStart []float64
}

// NumVariables returns the total LP variable count
func (m *ReducedModel) NumVariables() int {
	return m.numUtil + m.numFlow + m.numSlack
}

// FlowEdges returns the edges backing flow variables, in variable order
func (m *ReducedModel) FlowEdges() []entities.EdgeKey {
	return m.flowEdges
}

// SlackCenters returns the demand centers that received a slack variable
func (m *ReducedModel) SlackCenters() []string {
	return m.slackCenters
}

// SetWarmStart seeds the flow variables from a previous solution. It is an
// optimization hint only; backends that cannot start from a point ignore
// it.
func (m *ReducedModel) SetWarmStart(previous entities.Solution) {
	if previous == nil {
		m.warmStart = nil
		return
	}
	initial := make([]float64, m.NumVariables())
	for i, edge := range m.flowEdges {
		initial[m.numUtil+i] = previous.Flow(edge)
	}
	m.warmStart = initial
}

// Problem lowers the model to the backend's general LP form
func (m *ReducedModel) Problem() backend.Problem {
	n := m.NumVariables()

	problem := backend.Problem{
		C:       make([]float64, n),
		Initial: m.warmStart,
	}
	copy(problem.C, m.objective)

	if len(m.ineqRows) > 0 {
		g := mat.NewDense(len(m.ineqRows), n, nil)
		h := make([]float64, len(m.ineqRows))
		for i, r := range m.ineqRows {
			for j, v := range r.coeffs {
				g.Set(i, j, v)
			}
			h[i] = r.rhs
		}
		problem.G = g
		problem.H = h
	}
	if len(m.eqRows) > 0 {
		a := mat.NewDense(len(m.eqRows), n, nil)
		b := make([]float64, len(m.eqRows))
		for i, r := range m.eqRows {
			for j, v := range r.coeffs {
				a.Set(i, j, v)
			}
			b[i] = r.rhs
		}
		problem.A = a
		problem.B = b
	}
	return problem
}

// DecodeFlows maps a backend variable vector back onto edges. No filtering
// happens here; the reduced solver applies the noise epsilon.
func (m *ReducedModel) DecodeFlows(x []float64) entities.Solution {
	solution := entities.NewSolution(m.numFlow)
	for i, edge := range m.flowEdges {
		solution.Set(edge, x[m.numUtil+i])
	}
	return solution
}

// ReducedModelBuilder assembles the reduced LP from the base model and the
// extracted core variables.
type ReducedModelBuilder struct {
	slackPenalty  float64
	balanceFactor float64
}

// NewReducedModelBuilder creates a builder. slackPenalty prices unmet
// demand so it dominates any realistic transport cost; balanceFactor is
// the fraction of outbound production flow that must be covered by inbound
// feedstock (the 10%-slack approximation of true BOM consumption).
func NewReducedModelBuilder(slackPenalty, balanceFactor float64) *ReducedModelBuilder {
	return &ReducedModelBuilder{slackPenalty: slackPenalty, balanceFactor: balanceFactor}
}

// Build constructs the reduced model:
//
//   - utilization u(c,p) in [0,1], flow f(e) >= 0, demand slack s(d) >= 0;
//   - capacity: sum_p u(c,p)*cap(c) <= cap(c) per center with utilization
//     variables;
//   - utilization linking: outbound flow of product p from c cannot exceed
//     u(c,p)*cap(c), which is what makes capacity bind on flows;
//   - demand: inbound major-route flow + s(d) = demand target, omitted for
//     demand centers no major route reaches;
//   - material balance: inbound >= balanceFactor * outbound per production
//     center, omitted when both sides are structurally empty;
//   - objective: flow costs plus slackPenalty per unit of unmet demand.
//
// A center with NaN or negative capacity is a configuration error.
func (b *ReducedModelBuilder) Build(model repositories.BaseModel, core *entities.CoreVariableSet) (*ReducedModel, error) {
	for _, center := range model.Centers() {
		if math.IsNaN(center.Capacity) || center.Capacity < 0 {
			return nil, errors.Configurationf("center %s has invalid capacity %g", center.Name, center.Capacity)
		}
	}

	rm := &ReducedModel{
		core:      core,
		flowEdges: core.FlowEdges(),
		flowIndex: make(map[entities.EdgeKey]int),
		numUtil:   len(core.Utilization),
	}
	rm.numFlow = len(rm.flowEdges)
	for i, edge := range rm.flowEdges {
		rm.flowIndex[edge] = rm.numUtil + i
	}

	utilIndex := make(map[entities.UtilizationKey]int, rm.numUtil)
	for i, key := range core.Utilization {
		utilIndex[key] = i
	}

	majorSet := make(map[entities.EdgeKey]struct{}, len(core.MajorRoutes))
	for _, edge := range core.MajorRoutes {
		majorSet[edge] = struct{}{}
	}

	// Demand slacks, one per demand center with at least one inbound major
	// route. Demand centers outside that set are only servable through
	// flows this model does not represent, so they get no row at all.
	slackIndex := make(map[string]int)
	for _, center := range model.Centers() {
		if center.Role != entities.RoleDemand {
			continue
		}
		reached := false
		for _, edge := range core.MajorRoutes {
			if edge.To == center.Name {
				reached = true
				break
			}
		}
		if reached {
			slackIndex[center.Name] = rm.numUtil + rm.numFlow + rm.numSlack
			rm.slackCenters = append(rm.slackCenters, center.Name)
			rm.numSlack++
		}
	}

	rm.objective = make([]float64, rm.NumVariables())
	for i, edge := range rm.flowEdges {
		rm.objective[rm.numUtil+i] = model.Cost(edge)
	}
	for _, idx := range slackIndex {
		rm.objective[idx] = b.slackPenalty
	}

	// Utilization upper bounds: u <= 1.
	for _, key := range core.Utilization {
		rm.ineqRows = append(rm.ineqRows, row{
			coeffs: map[int]float64{utilIndex[key]: 1},
			rhs:    1,
		})
	}

	for _, center := range model.Centers() {
		switch center.Role {
		case entities.RoleProduction:
			b.addCapacityRows(rm, center, utilIndex, majorSet)
			b.addBalanceRow(rm, center, majorSet)
		case entities.RoleDemand:
			if idx, ok := slackIndex[center.Name]; ok {
				b.addDemandRow(rm, center, idx, core.MajorRoutes)
			}
		}
	}

	return rm, nil
}

// addCapacityRows emits the aggregate capacity row and the per-product
// linking rows for one production center.
func (b *ReducedModelBuilder) addCapacityRows(rm *ReducedModel, center *entities.ProcessCenter, utilIndex map[entities.UtilizationKey]int, majorSet map[entities.EdgeKey]struct{}) {
	capacityRow := row{coeffs: make(map[int]float64), rhs: center.Capacity}
	hasUtil := false

	for _, key := range rm.core.Utilization {
		if key.Center != center.Name {
			continue
		}
		hasUtil = true
		ui := utilIndex[key]
		capacityRow.coeffs[ui] += center.Capacity

		linking := row{coeffs: map[int]float64{ui: -center.Capacity}, rhs: 0}
		for i, edge := range rm.flowEdges {
			if edge.From != center.Name || edge.Commodity != key.Product {
				continue
			}
			if _, major := majorSet[edge]; !major {
				continue
			}
			linking.coeffs[rm.numUtil+i] += 1
		}
		rm.ineqRows = append(rm.ineqRows, linking)
	}

	// Omitted for centers with no utilization variables.
	if hasUtil {
		rm.ineqRows = append(rm.ineqRows, capacityRow)
	}
}

// addBalanceRow emits the material-balance approximation for one
// production center: balanceFactor*outbound - inbound <= 0. Self-loops are
// excluded on both sides.
func (b *ReducedModelBuilder) addBalanceRow(rm *ReducedModel, center *entities.ProcessCenter, majorSet map[entities.EdgeKey]struct{}) {
	balance := row{coeffs: make(map[int]float64), rhs: 0}
	touched := false

	for i, edge := range rm.flowEdges {
		if edge.SelfLoop() {
			continue
		}
		if edge.To == center.Name {
			balance.coeffs[rm.numUtil+i] -= 1
			touched = true
		}
		if edge.From == center.Name {
			if _, major := majorSet[edge]; major {
				balance.coeffs[rm.numUtil+i] += b.balanceFactor
				touched = true
			}
		}
	}

	if touched {
		rm.ineqRows = append(rm.ineqRows, balance)
	}
}

// addDemandRow emits the equality inbound + slack = target for one demand
// center. The demand target is the center's capacity.
func (b *ReducedModelBuilder) addDemandRow(rm *ReducedModel, center *entities.ProcessCenter, slackIdx int, majorRoutes []entities.EdgeKey) {
	demand := row{coeffs: map[int]float64{slackIdx: 1}, rhs: center.Capacity}
	for _, edge := range majorRoutes {
		if edge.To != center.Name {
			continue
		}
		demand.coeffs[rm.flowIndex[edge]] += 1
	}
	rm.eqRows = append(rm.eqRows, demand)
}
