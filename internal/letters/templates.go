package letters

import "creditlens/pkg/types"

// Templates use [TOKEN] placeholders; fillTemplate substitutes known
// tokens and leaves a literal default for anything the caller did not
// supply.

const disputeTemplate = `[DATE]

[CONSUMER_NAME]
[CONSUMER_ADDRESS]

[RECIPIENT]

Re: Formal dispute of inaccurate information — account [ACCOUNT_NUMBER]

To Whom It May Concern:

I am writing to dispute the following information in my credit file. The item listed below is inaccurate or incomplete, and I am requesting that it be removed or corrected.

Creditor: [CREDITOR_NAME]
Account: [ACCOUNT_NUMBER]
Reason for dispute: [DISPUTE_REASON]

[ITEM_DESCRIPTION]

Under the Fair Credit Reporting Act, 15 U.S.C. 1681i, you are required to reinvestigate this item and delete any information that cannot be verified. Please complete your reinvestigation within 30 days of receipt of this letter and send me written confirmation of the results, along with a corrected copy of my credit report.

I have attached copies of supporting documentation. Please direct all correspondence regarding this dispute to the address above.

Sincerely,

[CONSUMER_NAME]
SSN (last four): [SSN_LAST4]`

const complaintTemplate = `[DATE]

[CONSUMER_NAME]
[CONSUMER_ADDRESS]

[RECIPIENT]

Re: Complaint regarding violation of consumer reporting obligations — account [ACCOUNT_NUMBER]

To Whom It May Concern:

I am filing a formal complaint regarding the handling of my credit information. The conduct described below does not meet the obligations imposed on furnishers and consumer reporting agencies.

Creditor: [CREDITOR_NAME]
Account: [ACCOUNT_NUMBER]
Nature of complaint: [DISPUTE_REASON]

[ITEM_DESCRIPTION]

[LEGAL_BASIS]

I expect a written response describing the corrective action taken. If this matter is not resolved, I am prepared to escalate this complaint to the Consumer Financial Protection Bureau and my state attorney general.

Sincerely,

[CONSUMER_NAME]
SSN (last four): [SSN_LAST4]`

const verificationTemplate = `[DATE]

[CONSUMER_NAME]
[CONSUMER_ADDRESS]

[RECIPIENT]

Re: Request for verification of debt — account [ACCOUNT_NUMBER]

To Whom It May Concern:

This letter is a request for validation of the debt referenced above, made pursuant to the Fair Debt Collection Practices Act, 15 U.S.C. 1692g.

Creditor: [CREDITOR_NAME]
Account: [ACCOUNT_NUMBER]

Please provide: (1) proof that you own this debt or are authorized to collect it, (2) a complete accounting of the amount claimed, and (3) a copy of the original signed agreement.

Until this debt is validated, I request that all collection activity cease and that the item not be reported to any consumer reporting agency, or be reported as disputed.

Sincerely,

[CONSUMER_NAME]
SSN (last four): [SSN_LAST4]`

func templateFor(letterType types.LetterType) string {
	switch letterType {
	case types.LetterTypeComplaint:
		return complaintTemplate
	case types.LetterTypeVerification:
		return verificationTemplate
	default:
		return disputeTemplate
	}
}

// disputeReasons is the keyword lookup keyed by negative item type.
var disputeReasons = map[types.NegativeItemType]string{
	types.NegativeLatePayment:  "The payment history reported for this account is inaccurate; payments were made as agreed.",
	types.NegativeChargeOff:    "This charge-off is reported inaccurately and does not reflect the true status of the account.",
	types.NegativeCollection:   "This collection account is not mine or is reported with inaccurate information.",
	types.NegativeBankruptcy:   "This bankruptcy record is reported beyond the permissible period or contains inaccurate details.",
	types.NegativeForeclosure:  "This foreclosure is reported inaccurately.",
	types.NegativeRepossession: "This repossession is reported inaccurately.",
	types.NegativeTaxLien:      "This tax lien record is inaccurate or has been satisfied.",
	types.NegativeJudgment:     "This judgment is reported inaccurately or has been satisfied.",
	types.NegativeInquiry:      "This inquiry was not authorized by me.",
}

const defaultDisputeReason = "The information reported for this item is inaccurate or cannot be verified."
