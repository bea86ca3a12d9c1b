package extract

import (
	"creditlens/internal/utils"
	"creditlens/pkg/types"
)

// SampleReport returns a fixed demo dataset. It is the only source of
// canned data in the system and is reached exclusively through explicit
// demo/seed entry points, never as a fallback for a failed extraction.
func SampleReport() *types.ParsedReport {
	report := &types.ParsedReport{
		PersonalInfo: types.PersonalInfo{
			Name:        "Jordan Sample",
			SSN:         "XXX-XX-6789",
			DateOfBirth: "04/12/1988",
			Address:     "1200 Demo Street, Springfield, IL 62701",
		},
		Accounts: []types.CreditAccount{
			{
				AccountNumber: "XXXX-XXXX-XXXX-4821",
				CreditorName:  "First National Bank",
				AccountType:   types.AccountTypeCreditCard,
				Balance:       utils.Float64Ptr(2850),
				CreditLimit:   utils.Float64Ptr(3000),
				PaymentStatus: "current",
				DateOpened:    utils.StringPtr("06/15/2018"),
				DateReported:  utils.StringPtr("05/01/2024"),
				Bureaus:       []string{types.BureauExperian, types.BureauEquifax},
			},
			{
				AccountNumber: "XXXX-XXXX-XXXX-1134",
				CreditorName:  "Capital Lending",
				AccountType:   types.AccountTypeCreditCard,
				Balance:       utils.Float64Ptr(500),
				CreditLimit:   utils.Float64Ptr(1500),
				PaymentStatus: "charge-off",
				DateOpened:    utils.StringPtr("02/20/2016"),
				DateReported:  utils.StringPtr("01/10/2024"),
				Bureaus:       []string{types.BureauTransUnion},
			},
			{
				AccountNumber: "COLL-88213",
				CreditorName:  "Midwest Recovery",
				AccountType:   types.AccountTypeOther,
				Balance:       utils.Float64Ptr(1240),
				PaymentStatus: "collection",
				DateReported:  utils.StringPtr("11/05/2023"),
				Bureaus:       []string{types.BureauEquifax},
			},
			{
				AccountNumber: "AUTO-550021",
				CreditorName:  "Prairie Auto Finance",
				AccountType:   types.AccountTypeAutoLoan,
				Balance:       utils.Float64Ptr(9400),
				CreditLimit:   utils.Float64Ptr(18000),
				PaymentStatus: "30 days late",
				DateOpened:    utils.StringPtr("09/01/2021"),
				DateReported:  utils.StringPtr("04/15/2024"),
				Bureaus:       []string{types.BureauExperian, types.BureauTransUnion},
			},
		},
		Inquiries: []types.Inquiry{
			{CreditorName: "Springfield Credit Union", Date: "03/22/2024", InquiryType: "hard", Bureau: types.BureauExperian},
			{CreditorName: "RetailCard Services", Date: "01/08/2024", InquiryType: "hard", Bureau: types.BureauEquifax},
		},
		PublicRecords: []types.PublicRecord{},
	}

	report.EnsureDefaults()
	return report
}
