package letters

import (
	"strings"
	"testing"
)

const compliantLetter = `March 14, 2026

Jane Q Consumer
42 Elm Street, Springfield, IL 62701

Experian, P.O. Box 4500, Allen, TX 75013

Re: Formal dispute of inaccurate information - account XXXX-1234

To Whom It May Concern:

I am writing to dispute the following information in my credit file. The item listed below is inaccurate or incomplete, and I am requesting that it be removed or corrected.

Creditor: Capital One
Account: XXXX-1234

Under the Fair Credit Reporting Act, 15 U.S.C. 1681i, you are required to reinvestigate this item and delete any information that cannot be verified.

Sincerely,

Jane Q Consumer`

func TestScoreLetter_CompliantLetterScoresFull(t *testing.T) {
	result := ScoreLetter(compliantLetter)
	if result.Score != 100 {
		t.Fatalf("expected 100, got %d: %+v", result.Score, result.Checks)
	}
}

func TestScoreLetter_FailedChecksCarryDetail(t *testing.T) {
	result := ScoreLetter("too short to be a letter")

	if result.Score == 100 {
		t.Fatal("expected failing checks")
	}
	for _, c := range result.Checks {
		if c.Passed && c.Detail != "" {
			t.Errorf("passed check %q should not carry detail", c.Name)
		}
		if !c.Passed && c.Detail == "" {
			t.Errorf("failed check %q should explain itself", c.Name)
		}
	}
}

func TestScoreLetter_IndividualChecks(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(string) string
		check  string
	}{
		{"missing date", func(s string) string { return strings.Replace(s, "March 14, 2026", "sometime recently", 1) }, "date"},
		{"missing subject line", func(s string) string { return strings.Replace(s, "Re:", "About", 1) }, "recipient"},
		{"missing salutation", func(s string) string { return strings.Replace(s, "To Whom It May Concern:", "", 1) }, "salutation"},
		{"missing signature", func(s string) string { return strings.Replace(s, "Sincerely,", "", 1) }, "signature"},
		{"missing citation", func(s string) string {
			s = strings.Replace(s, "Fair Credit Reporting Act, 15 U.S.C. 1681i", "the law", 1)
			return s
		}, "legal_citation"},
		{"leftover placeholder", func(s string) string { return strings.Replace(s, "XXXX-1234", "[ACCOUNT_NUMBER]", 1) }, "no_placeholders"},
		{"control characters", func(s string) string { return s + "\x07" }, "printable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ScoreLetter(tc.mutate(compliantLetter))
			if result.Passed(tc.check) {
				t.Errorf("expected check %q to fail", tc.check)
			}
		})
	}
}

func TestScoreLetter_LengthBounds(t *testing.T) {
	short := ScoreLetter("Re: dispute\nTo Whom It May Concern:\nSincerely,")
	if short.Passed("length") {
		t.Error("expected the length check to fail on a short letter")
	}

	long := ScoreLetter(compliantLetter + strings.Repeat("\nfiller line for an overlong letter", 300))
	if long.Passed("length") {
		t.Error("expected the length check to fail on an overlong letter")
	}
}

func TestNormalizeLetter_RewritesTypography(t *testing.T) {
	in := "Dear Sir, I “dispute” this — it isn’t mine.\r\n\r\n\r\n\r\nSincerely,   \nJane"
	out := NormalizeLetter(in)

	if strings.ContainsAny(out, "“”’— \r") {
		t.Errorf("expected typography rewritten, got %q", out)
	}
	if strings.Contains(out, "\n\n\n") {
		t.Error("expected blank-line runs collapsed")
	}
	if strings.Contains(out, "Sincerely,   \n") {
		t.Error("expected trailing whitespace stripped")
	}
	if !strings.Contains(out, `"dispute"`) {
		t.Errorf("expected straight quotes, got %q", out)
	}
}

func TestNormalizeLetter_RaisesScore(t *testing.T) {
	smart := strings.Replace(compliantLetter, `dispute the following`, "“dispute” the following", 1)

	before := ScoreLetter(smart)
	after := ScoreLetter(NormalizeLetter(smart))

	if before.Passed("printable") {
		t.Fatal("expected smart quotes to fail the printable check")
	}
	if !after.Passed("printable") {
		t.Fatal("expected normalization to fix the printable check")
	}
	if after.Score <= before.Score {
		t.Errorf("expected normalization to raise the score, got %d -> %d", before.Score, after.Score)
	}
}
