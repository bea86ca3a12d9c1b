package analysis

import (
	"math"

	"creditlens/pkg/types"
)

// ScorePolicy estimates the advisory score impact of a report's
// findings. Two historical formulas exist; the active one is selected
// by configuration, not by call site.
type ScorePolicy interface {
	Name() string
	Estimate(items []types.NegativeItem, violations []types.Violation, utilization float64) int
}

func PolicyFromName(name string) ScorePolicy {
	if name == "v1" {
		return flatPolicy{}
	}
	return weightedPolicy{}
}

// flatPolicy is the original formula: every negative item and
// violation weighs the same.
type flatPolicy struct{}

func (flatPolicy) Name() string { return "v1" }

func (flatPolicy) Estimate(items []types.NegativeItem, violations []types.Violation, _ float64) int {
	return len(items)*15 + len(violations)*25
}

// itemWeights are the per-type points of the enhanced formula.
var itemWeights = map[types.NegativeItemType]int{
	types.NegativeLatePayment:  15,
	types.NegativeInquiry:      15,
	types.NegativeChargeOff:    50,
	types.NegativeCollection:   50,
	types.NegativeRepossession: 70,
	types.NegativeForeclosure:  70,
	types.NegativeTaxLien:      70,
	types.NegativeJudgment:     70,
	types.NegativeBankruptcy:   150,
}

const utilizationPenaltyFloor = 0.30

// weightedPolicy is the enhanced formula: type-weighted item points
// plus a proportional penalty for revolving utilization above 30%.
type weightedPolicy struct{}

func (weightedPolicy) Name() string { return "v2" }

func (weightedPolicy) Estimate(items []types.NegativeItem, _ []types.Violation, utilization float64) int {
	impact := 0
	for _, item := range items {
		weight, ok := itemWeights[item.Type]
		if !ok {
			weight = 15
		}
		impact += weight
	}

	if utilization > utilizationPenaltyFloor {
		impact += int(math.Round((utilization - utilizationPenaltyFloor) * 100))
	}

	return impact
}

// Summarize aggregates a parsed report's findings. Utilization is the
// combined balance over combined limit of the revolving accounts.
func Summarize(report *types.ParsedReport, items []types.NegativeItem, violations []types.Violation, policy ScorePolicy) types.Summary {
	var totalBalance, totalLimit float64
	for i := range report.Accounts {
		account := &report.Accounts[i]
		if account.AccountType != types.AccountTypeCreditCard {
			continue
		}
		if account.Balance != nil {
			totalBalance += *account.Balance
		}
		if account.CreditLimit != nil {
			totalLimit += *account.CreditLimit
		}
	}

	utilization := 0.0
	if totalLimit > 0 {
		utilization = totalBalance / totalLimit
	}

	return types.Summary{
		AccountCount:      len(report.Accounts),
		NegativeItemCount: len(items),
		ViolationCount:    len(violations),
		InquiryCount:      len(report.Inquiries),
		PublicRecordCount: len(report.PublicRecords),
		Utilization:       utilization,
		ScoreImpact:       policy.Estimate(items, violations, utilization),
		ScorePolicy:       policy.Name(),
	}
}
