package types

// PlanID identifies a subscription tier. The tier table is static and code
// defined; workspaces reference it through their billing config row.
type PlanID string

const (
	PlanStarter     PlanID = "Starter"
	PlanGrowth      PlanID = "Growth"
	PlanPartnership PlanID = "Partnership"
)

// Unlimited is the sentinel for limits that are not enforced.
const Unlimited = -1

// PlanLimits bounds workspace resource usage. Reports is a per-calendar-month
// allowance; the others are absolute counts.
type PlanLimits struct {
	Workspaces  int `json:"workspaces"`
	Connections int `json:"connections"`
	Reports     int `json:"reports"`
}

type Plan struct {
	ID     PlanID     `json:"id"`
	Name   string     `json:"name"`
	Limits PlanLimits `json:"limits"`
}

var Plans = map[PlanID]Plan{
	PlanStarter: {
		ID:     PlanStarter,
		Name:   "Starter",
		Limits: PlanLimits{Workspaces: 1, Connections: 1, Reports: 1},
	},
	PlanGrowth: {
		ID:     PlanGrowth,
		Name:   "Growth",
		Limits: PlanLimits{Workspaces: 1, Connections: 3, Reports: 5},
	},
	PlanPartnership: {
		ID:     PlanPartnership,
		Name:   "Partnership",
		Limits: PlanLimits{Workspaces: 10, Connections: 10, Reports: Unlimited},
	},
}

// PlanByID resolves a tier, falling back to Starter for unknown or empty ids
// so a missing billing config never blocks reads.
func PlanByID(id PlanID) Plan {
	if p, ok := Plans[id]; ok {
		return p
	}
	return Plans[PlanStarter]
}
