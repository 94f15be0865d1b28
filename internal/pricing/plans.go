package pricing

import "fmt"

// Plan is one row of the static membership price table. Amounts are ZAR cents.
type Plan struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Monthly     int    `json:"monthly"`
}

// JoiningFee is the fixed one-time charge added to the first membership
// payment (R90.00 in cents). League registrations skip it.
const JoiningFee = 9000

// LeagueKey is the free registration path: no joining fee and no checkout.
const LeagueKey = "league"

// planPrices maps plan key (tier x billing cycle) to its monthly rate.
var planPrices = map[string]Plan{
	"adult-monthly":   {Key: "adult-monthly", Monthly: 15000, Description: "Adult Pro - Monthly (R150/mo)"},
	"adult-annual":    {Key: "adult-annual", Monthly: 12000, Description: "Adult Pro - Annual (R120/mo billed annually)"},
	"masters-monthly": {Key: "masters-monthly", Monthly: 12000, Description: "Masters - Monthly (R120/mo)"},
	"masters-annual":  {Key: "masters-annual", Monthly: 9500, Description: "Masters - Annual (R95/mo billed annually)"},
	"junior-monthly":  {Key: "junior-monthly", Monthly: 7500, Description: "Junior - Monthly (R75/mo)"},
	"junior-annual":   {Key: "junior-annual", Monthly: 6000, Description: "Junior - Annual (R60/mo billed annually)"},
	LeagueKey:         {Key: LeagueKey, Monthly: 0, Description: "Queenswood League Registration (Free / First Match Fee)"},
}

// planOrder fixes the listing order for the /plans endpoint.
var planOrder = []string{
	"adult-monthly", "adult-annual",
	"masters-monthly", "masters-annual",
	"junior-monthly", "junior-annual",
	LeagueKey,
}

// Resolved carries everything the membership checkout needs for a plan choice.
type Resolved struct {
	Plan

	// FirstPayment is the amount charged at signup: the monthly rate plus the
	// joining fee, or zero for the league path.
	FirstPayment int
}

// Resolve maps a (plan, billingCycle) pair to a price table entry. The plan
// key is "{plan}-{billingCycle}" with billingCycle defaulting to "monthly";
// "league" stands alone.
func Resolve(plan, billingCycle string) (Resolved, error) {
	key := LeagueKey
	if plan != LeagueKey {
		cycle := billingCycle
		if cycle == "" {
			cycle = "monthly"
		}
		key = fmt.Sprintf("%s-%s", plan, cycle)
	}

	p, ok := planPrices[key]
	if !ok {
		return Resolved{}, fmt.Errorf("Unknown plan: %s", key)
	}

	first := 0
	if key != LeagueKey {
		first = p.Monthly + JoiningFee
	}

	return Resolved{Plan: p, FirstPayment: first}, nil
}

// List returns the price table in display order.
func List() []Plan {
	plans := make([]Plan, 0, len(planOrder))
	for _, key := range planOrder {
		plans = append(plans, planPrices[key])
	}
	return plans
}
