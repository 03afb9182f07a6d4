package terms

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
)

func TestResolveTemplate1(t *testing.T) {
	r, err := Resolve(domain.TermsTemplate1, decimal.NewFromInt(150000))
	require.NoError(t, err)

	require.Len(t, r.Clauses, 4)
	assert.Contains(t, r.Clauses[0], "thirty (30) days")
	assert.Contains(t, r.Clauses[1], "signed copy")
	assert.Contains(t, r.Clauses[2], "new quotation")
	assert.Contains(t, r.Clauses[3], "bond")

	assert.Equal(t, "Php 150,000.00", r.ProposalTotal)
	assert.Contains(t, r.ProposalPrefix, "FCM proposes to furnish")
	assert.Equal(t, r.ProposalPrefix+"Php 150,000.00.", r.ProposalText())
}

func TestResolveTemplate2(t *testing.T) {
	r, err := Resolve(domain.TermsTemplate2, decimal.NewFromFloat(2500.5))
	require.NoError(t, err)

	require.Len(t, r.Clauses, 4)
	assert.Contains(t, r.Clauses[0], "down payment")
	assert.Equal(t, "Php 2,500.50", r.ProposalTotal)
	assert.Contains(t, r.ProposalPrefix, "supply and deliver")
}

func TestResolveUnknownTemplate(t *testing.T) {
	_, err := Resolve(domain.TermsTemplateID("template9"), decimal.Zero)
	assert.Error(t, err)
}

// Switching templates and back must reproduce the original clause text
// byte-for-byte: realized terms are a projection of (template, total), not
// mutable state.
func TestResolveRoundTrip(t *testing.T) {
	total := decimal.NewFromInt(98765)

	first, err := Resolve(domain.TermsTemplate1, total)
	require.NoError(t, err)

	_, err = Resolve(domain.TermsTemplate2, total)
	require.NoError(t, err)

	again, err := Resolve(domain.TermsTemplate1, total)
	require.NoError(t, err)

	assert.Equal(t, first.Clauses, again.Clauses)
	assert.Equal(t, first.ProposalText(), again.ProposalText())
}

// Clause depends only on the template; the total must not leak into clause
// text, and callers mutating the returned slice must not corrupt the
// template.
func TestResolveClausesAreIsolated(t *testing.T) {
	a, err := Resolve(domain.TermsTemplate1, decimal.NewFromInt(1))
	require.NoError(t, err)
	a.Clauses[0] = "mutated"

	b, err := Resolve(domain.TermsTemplate1, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", b.Clauses[0])
}
