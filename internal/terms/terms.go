// Package terms resolves a terms-template identifier and a computed total
// into the realized contractual clauses and proposal sentence of a
// quotation.
//
// Templates are static configuration, not persisted state. The realized
// text stored with a quotation is a cache of Resolve(template, total) and
// is regenerated at every save/load boundary, so stale clause text from a
// previous template or a previous total can never survive an edit.
package terms

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/money"
)

// Resolved is the realized output for one (template, total) pair.
// The proposal sentence is returned in three parts so the document layout
// can bold the total and run its inline-fit check without re-parsing the
// sentence.
type Resolved struct {
	Clauses        []string
	ProposalPrefix string
	ProposalTotal  string
	ProposalSuffix string
}

// ProposalText returns the full proposal sentence as persisted with the
// quotation.
func (r Resolved) ProposalText() string {
	if r.ProposalPrefix == "" {
		return ""
	}
	return r.ProposalPrefix + r.ProposalTotal + r.ProposalSuffix
}

var template1Clauses = []string{
	"Full billing shall be made thirty (30) days after completion and acceptance of the work.",
	"Kindly return a signed copy of this quotation by email to signify your acceptance.",
	"Any additional work not covered by this quotation shall be subject to a new quotation.",
	"This quotation excludes contractor's all-risk insurance and performance/contract bond unless otherwise specified.",
}

var template2Clauses = []string{
	"Fifty percent (50%) down payment is required upon approval of this quotation.",
	"The remaining balance shall be paid in full upon completion and turnover of the work.",
	"This quotation is valid for fifteen (15) days from the date indicated above.",
	"Any additional work or change in scope shall be quoted and billed separately.",
}

// Resolve produces the ordered clause list and proposal sentence for the
// given template and total. The clause text depends only on the template;
// the total is embedded in the proposal sentence.
func Resolve(id domain.TermsTemplateID, total decimal.Decimal) (Resolved, error) {
	amount := "Php " + money.Format(total)

	switch id {
	case domain.TermsTemplate1:
		return Resolved{
			Clauses:        clone(template1Clauses),
			ProposalPrefix: "FCM proposes to furnish all materials, labor, tools, and equipment necessary to complete the above described works for the sum of ",
			ProposalTotal:  amount,
			ProposalSuffix: ".",
		}, nil
	case domain.TermsTemplate2:
		return Resolved{
			Clauses:        clone(template2Clauses),
			ProposalPrefix: "FCM proposes to supply and deliver the above listed items for the sum of ",
			ProposalTotal:  amount,
			ProposalSuffix: ".",
		}, nil
	default:
		return Resolved{}, fmt.Errorf("unknown terms template: %q", id)
	}
}

func clone(clauses []string) []string {
	out := make([]string, len(clauses))
	copy(out, clauses)
	return out
}
