package analysis

import (
	"testing"

	"creditlens/internal/utils"
	"creditlens/pkg/types"
)

func TestFlatPolicy_EveryFindingWeighsTheSame(t *testing.T) {
	items := []types.NegativeItem{
		{Type: types.NegativeBankruptcy},
		{Type: types.NegativeLatePayment},
	}
	violations := []types.Violation{{}, {}, {}}

	got := flatPolicy{}.Estimate(items, violations, 0.95)
	want := 2*15 + 3*25
	if got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

func TestWeightedPolicy_TypeWeights(t *testing.T) {
	cases := []struct {
		itemType types.NegativeItemType
		want     int
	}{
		{types.NegativeLatePayment, 15},
		{types.NegativeInquiry, 15},
		{types.NegativeChargeOff, 50},
		{types.NegativeCollection, 50},
		{types.NegativeRepossession, 70},
		{types.NegativeForeclosure, 70},
		{types.NegativeTaxLien, 70},
		{types.NegativeJudgment, 70},
		{types.NegativeBankruptcy, 150},
	}

	for _, tc := range cases {
		got := weightedPolicy{}.Estimate([]types.NegativeItem{{Type: tc.itemType}}, nil, 0)
		if got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.itemType, tc.want, got)
		}
	}
}

func TestWeightedPolicy_ViolationsDoNotMoveTheScore(t *testing.T) {
	items := []types.NegativeItem{{Type: types.NegativeChargeOff}}
	violations := []types.Violation{{}, {}, {}}

	got := weightedPolicy{}.Estimate(items, violations, 0)
	if got != 50 {
		t.Errorf("expected the item weight alone, got %d", got)
	}
}

func TestWeightedPolicy_UtilizationPenalty(t *testing.T) {
	// 95% utilization: penalty is round((0.95-0.30)*100) = 65
	got := weightedPolicy{}.Estimate(nil, nil, 0.95)
	if got != 65 {
		t.Errorf("expected 65, got %d", got)
	}

	// at the floor: no penalty
	got = weightedPolicy{}.Estimate(nil, nil, 0.30)
	if got != 0 {
		t.Errorf("expected 0 at the floor, got %d", got)
	}
}

func TestWeightedPolicy_UnknownTypeDefaultsToFifteen(t *testing.T) {
	got := weightedPolicy{}.Estimate([]types.NegativeItem{{Type: "something_new"}}, nil, 0)
	if got != 15 {
		t.Errorf("expected unknown types to weigh 15, got %d", got)
	}
}

func TestPolicyFromName(t *testing.T) {
	if PolicyFromName("v1").Name() != "v1" {
		t.Error("expected v1 policy")
	}
	if PolicyFromName("v2").Name() != "v2" {
		t.Error("expected v2 policy")
	}
	if PolicyFromName("").Name() != "v2" {
		t.Error("expected unknown names to default to v2")
	}
}

func TestSummarize_AggregateUtilizationIsCardOnly(t *testing.T) {
	report := &types.ParsedReport{
		Accounts: []types.CreditAccount{
			{AccountType: types.AccountTypeCreditCard, Balance: utils.Float64Ptr(500), CreditLimit: utils.Float64Ptr(1000)},
			{AccountType: types.AccountTypeCreditCard, Balance: utils.Float64Ptr(1500), CreditLimit: utils.Float64Ptr(3000)},
			{AccountType: types.AccountTypeMortgage, Balance: utils.Float64Ptr(200000), CreditLimit: utils.Float64Ptr(250000)},
		},
		Inquiries: []types.Inquiry{{}},
	}

	summary := Summarize(report, nil, nil, flatPolicy{})
	if summary.Utilization != 0.5 {
		t.Errorf("expected 0.5 utilization, got %f", summary.Utilization)
	}
	if summary.AccountCount != 3 {
		t.Errorf("expected 3 accounts, got %d", summary.AccountCount)
	}
	if summary.InquiryCount != 1 {
		t.Errorf("expected 1 inquiry, got %d", summary.InquiryCount)
	}
	if summary.ScorePolicy != "v1" {
		t.Errorf("expected policy name recorded, got %q", summary.ScorePolicy)
	}
}
