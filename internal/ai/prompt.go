package ai

// analysisPrompt is the fixed instruction sent to every text provider.
// The schema here mirrors types.ParsedReport; the normalizer repairs
// responses that drift from it.
const analysisPrompt = `You are a credit report analysis engine. Extract structured data from the credit report below and respond with ONLY a single JSON object, no prose, matching exactly this schema:

{
  "personalInfo": {
    "name": "string",
    "ssn": "string (masked, last 4 digits only, e.g. XXX-XX-1234)",
    "dateOfBirth": "string",
    "address": "string"
  },
  "accounts": [
    {
      "accountNumber": "string (partially masked)",
      "creditorName": "string",
      "accountType": "credit_card | mortgage | auto_loan | personal_loan | student_loan | other",
      "balance": number,
      "creditLimit": number,
      "paymentStatus": "string (e.g. current, late, charge-off, collection)",
      "dateOpened": "MM/DD/YYYY",
      "dateReported": "MM/DD/YYYY",
      "paymentHistory": "string",
      "bureaus": ["Experian" | "Equifax" | "TransUnion"]
    }
  ],
  "negativeItems": [
    {
      "type": "late_payment | charge_off | collection | bankruptcy | foreclosure | repossession | tax_lien | judgment | inquiry",
      "creditorName": "string",
      "currentBalance": number,
      "dateReported": "MM/DD/YYYY",
      "status": "string",
      "description": "string"
    }
  ],
  "inquiries": [
    {"creditorName": "string", "date": "MM/DD/YYYY", "inquiryType": "hard | soft", "bureau": "string"}
  ],
  "publicRecords": [
    {"recordType": "string", "status": "string", "dateFiled": "MM/DD/YYYY", "amount": number, "court": "string"}
  ],
  "violations": []
}

Rules: omit fields you cannot find rather than inventing values, use numbers (not strings) for monetary amounts, always mask full account and social security numbers, and include every tradeline you can identify.`
