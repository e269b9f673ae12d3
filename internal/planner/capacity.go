package planner

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/csfplan/internal/domain"
)

// ScheduleConfig bounds a next-actions run.
type ScheduleConfig struct {
	CapacityHoursPerWeek int
	HorizonWeeks         int
	Goal                 domain.OptimizationGoal
	MinimumGapScore      float64
}

// Action is one admitted remediation step.
type Action struct {
	Rank          int
	Gap           GapRecord
	ROI           float64
	Readiness     Readiness
	Week          int // 0 when admitted but beyond the horizon
	Impact        string
	Justification string
}

// BlockedAction is a candidate held back by a hard-blocking prerequisite.
type BlockedAction struct {
	Gap      GapRecord
	Blockers []Blocker
}

// ScheduledWeek is one closed week of the timeline.
type ScheduledWeek struct {
	WeekIndex      int      `json:"week_index" yaml:"week_index"`
	SubcategoryIDs []string `json:"subcategory_ids" yaml:"subcategory_ids"`
	HoursAllocated int      `json:"hours_allocated" yaml:"hours_allocated"`
	Milestones     []string `json:"milestones" yaml:"milestones"`
}

// CapacitySummary reports how the budget was used.
type CapacitySummary struct {
	CapacityHoursPerWeek  int     `json:"capacity_hours_per_week" yaml:"capacity_hours_per_week"`
	HorizonWeeks          int     `json:"horizon_weeks" yaml:"horizon_weeks"`
	TotalCapacityHours    int     `json:"total_capacity_hours" yaml:"total_capacity_hours"`
	AdmissionLimitHours   float64 `json:"admission_limit_hours" yaml:"admission_limit_hours"`
	AllocatedHours        int     `json:"allocated_hours" yaml:"allocated_hours"`
	ScheduledHours        int     `json:"scheduled_hours" yaml:"scheduled_hours"`
	UtilizationPercentage int     `json:"utilization_percentage" yaml:"utilization_percentage"`
	Candidates            int     `json:"candidates" yaml:"candidates"`
	FeasibleActions       int     `json:"feasible_actions" yaml:"feasible_actions"`
	StretchActions        int     `json:"stretch_actions" yaml:"stretch_actions"`
	BlockedActions        int     `json:"blocked_actions" yaml:"blocked_actions"`
	DeferredActions       int     `json:"deferred_actions" yaml:"deferred_actions"`
	UnscheduledActions    int     `json:"unscheduled_actions" yaml:"unscheduled_actions"`
}

// Plan is the scheduler output.
type Plan struct {
	Goal     domain.OptimizationGoal
	Capacity CapacitySummary
	Actions  []Action
	Blocked  []BlockedAction
	Weeks    []ScheduledWeek
}

type candidate struct {
	gap       GapRecord
	readiness Readiness
	roi       float64
}

// ROI scores value per unit of effort, weighted by the goal's function multiplier.
func ROI(g GapRecord, goal domain.OptimizationGoal) float64 {
	effort := math.Max(1, float64(g.EffortScore))
	value := (g.Impact() + math.Min(10, g.RiskScore)) / 2
	return value * 10 / effort * GoalMultiplier(goal, g.Function)
}

// Schedule admits candidates under capacity × horizon × OvercommitFactor and
// lays the admitted ones into weeks of at most CapacityHoursPerWeek hours.
// Blocked candidates are reported separately and never admitted. Admission
// stops at the first candidate that would exceed the limit.
func Schedule(records []GapRecord, readiness map[string]Readiness, cfg ScheduleConfig) Plan {
	total := cfg.CapacityHoursPerWeek * cfg.HorizonWeeks
	limit := float64(total) * OvercommitFactor

	plan := Plan{
		Goal: cfg.Goal,
		Capacity: CapacitySummary{
			CapacityHoursPerWeek: cfg.CapacityHoursPerWeek,
			HorizonWeeks:         cfg.HorizonWeeks,
			TotalCapacityHours:   total,
			AdmissionLimitHours:  limit,
		},
		Actions: []Action{},
		Blocked: []BlockedAction{},
		Weeks:   []ScheduledWeek{},
	}

	var cands []candidate
	for _, g := range records {
		if !g.HasGap() || g.GapScore < cfg.MinimumGapScore {
			continue
		}
		rd, ok := readiness[g.SubcategoryID]
		if !ok {
			rd = Readiness{SubcategoryID: g.SubcategoryID, Status: domain.StatusReady}
		}
		if rd.Status == domain.StatusBlocked {
			plan.Blocked = append(plan.Blocked, BlockedAction{Gap: g, Blockers: rd.Blockers()})
			continue
		}
		cands = append(cands, candidate{gap: g, readiness: rd, roi: ROI(g, cfg.Goal)})
	}
	roiSort(cands)
	plan.Capacity.Candidates = len(cands)
	plan.Capacity.BlockedActions = len(plan.Blocked)

	allocated := 0
	for _, c := range cands {
		if !withinOvercommit(allocated+c.gap.EffortHours, total) {
			break
		}
		allocated += c.gap.EffortHours
		plan.Actions = append(plan.Actions, Action{
			Rank:          len(plan.Actions) + 1,
			Gap:           c.gap,
			ROI:           c.roi,
			Readiness:     c.readiness,
			Impact:        impactText(c.gap),
			Justification: justificationText(c, cfg.Goal),
		})
	}
	plan.Capacity.AllocatedHours = allocated
	plan.Capacity.DeferredActions = len(cands) - len(plan.Actions)

	plan.Weeks = bucketWeeks(plan.Actions, cfg.CapacityHoursPerWeek, cfg.HorizonWeeks)

	for _, a := range plan.Actions {
		switch a.Readiness.Status {
		case domain.StatusReady:
			plan.Capacity.FeasibleActions++
		case domain.StatusPartial:
			plan.Capacity.StretchActions++
		}
		if a.Week == 0 {
			plan.Capacity.UnscheduledActions++
		} else {
			plan.Capacity.ScheduledHours += a.Gap.EffortHours
		}
	}
	if total > 0 {
		plan.Capacity.UtilizationPercentage = int(math.Round(float64(allocated) / float64(total) * 100))
	}
	return plan
}

// withinOvercommit reports hours <= total × 1.2 in integer arithmetic so the
// boundary is exact.
func withinOvercommit(hours, total int) bool {
	return hours*10 <= total*12
}

// bucketWeeks fills weeks in action order and sets each action's week index.
// A week closes when it is non-empty and the next action would push it past
// capacity; an action larger than capacity therefore occupies a week alone.
func bucketWeeks(actions []Action, capacity, horizon int) []ScheduledWeek {
	weeks := []ScheduledWeek{}
	open := ScheduledWeek{WeekIndex: 1}

	for i := range actions {
		hours := actions[i].Gap.EffortHours
		if len(open.SubcategoryIDs) > 0 && open.HoursAllocated+hours > capacity {
			weeks = append(weeks, closeWeek(open))
			open = ScheduledWeek{WeekIndex: open.WeekIndex + 1}
		}
		if open.WeekIndex > horizon {
			break
		}
		open.SubcategoryIDs = append(open.SubcategoryIDs, actions[i].Gap.SubcategoryID)
		open.HoursAllocated += hours
		actions[i].Week = open.WeekIndex
	}
	if len(open.SubcategoryIDs) > 0 && open.WeekIndex <= horizon {
		weeks = append(weeks, closeWeek(open))
	}
	return weeks
}

func closeWeek(w ScheduledWeek) ScheduledWeek {
	w.Milestones = weekMilestones(w)
	return w
}

func weekMilestones(w ScheduledWeek) []string {
	milestones := []string{}
	if w.WeekIndex == 1 {
		milestones = append(milestones, "Kickoff: remediation program start")
	}
	for _, id := range w.SubcategoryIDs {
		if domain.FunctionOf(id) == domain.FunctionGovern {
			milestones = append(milestones, "Governance framework update")
			break
		}
	}
	if n := len(w.SubcategoryIDs); n >= 3 {
		milestones = append(milestones, fmt.Sprintf("Complete %d implementations", n))
	}
	return milestones
}

func impactText(g GapRecord) string {
	level := "moderate"
	switch {
	case g.RiskScore >= HighRiskThreshold:
		level = "high"
	case g.RiskScore < 4:
		level = "low"
	}
	return fmt.Sprintf("Closes a %.0f%% maturity gap (%s to %s); %s risk reduction (%.1f/10)",
		g.GapScore, g.CurrentLevel.Label(), g.TargetLevel.Label(), level, g.RiskScore)
}

func justificationText(c candidate, goal domain.OptimizationGoal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ROI %.2f under %s goal", c.roi, goal)
	if m := GoalMultiplier(goal, c.gap.Function); m != 1.0 {
		fmt.Fprintf(&b, " (%s weighted x%.1f)", c.gap.Function, m)
	}
	fmt.Fprintf(&b, "; %d effort hours", c.gap.EffortHours)
	if c.readiness.Status == domain.StatusPartial {
		b.WriteString("; soft dependencies: " + c.readiness.BlockerSummary())
	} else {
		b.WriteString("; prerequisites satisfied")
	}
	return b.String()
}
