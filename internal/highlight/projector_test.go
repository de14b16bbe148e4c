package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobshield/internal/domain/catalog"
	"jobshield/internal/domain/services"
	"jobshield/pkg/logger"
)

func newTestProjector() *Projector {
	log := logger.New(logger.Config{Level: "error", Format: "console"})
	return NewProjector(services.NewMatcher(), log)
}

func TestProject_WrapsMatchesInMarkers(t *testing.T) {
	p := newTestProjector()

	out, spans := p.Project(
		`<html><body><p>Send the fee now</p></body></html>`,
		[]string{catalog.PaymentRequest, catalog.UrgencyManipulation},
		Options{},
	)

	assert.Contains(t, out, `<mark data-jobshield="Payment Request"`)
	assert.Contains(t, out, `<mark data-jobshield="Urgency Manipulation"`)
	assert.Contains(t, out, `>fee</mark>`)
	assert.Contains(t, out, `>now</mark>`)

	require.Len(t, spans, 2)
	assert.Equal(t, "fee", spans[0].Text)
	assert.Equal(t, catalog.PaymentRequest, spans[0].Category)
	assert.Equal(t, "now", spans[1].Text)
	assert.Equal(t, catalog.UrgencyManipulation, spans[1].Category)
}

func TestProject_SkipsNonContentContainers(t *testing.T) {
	p := newTestProjector()

	out, spans := p.Project(
		`<html><body>`+
			`<script>var fee = 1;</script>`+
			`<nav>fee</nav>`+
			`<div hidden>fee</div>`+
			`<p>fee</p>`+
			`</body></html>`,
		[]string{catalog.PaymentRequest},
		Options{},
	)

	require.Len(t, spans, 1)
	assert.Contains(t, out, `<script>var fee = 1;</script>`)
	assert.Contains(t, out, `<nav>fee</nav>`)
	assert.Contains(t, out, `<div hidden="">fee</div>`)
}

func TestProject_Idempotent(t *testing.T) {
	p := newTestProjector()
	patterns := []string{catalog.PaymentRequest}

	once, spans := p.Project(`<html><body><p>pay the fee</p></body></html>`, patterns, Options{})
	require.Len(t, spans, 2)

	twice, respans := p.Project(once, patterns, Options{})

	assert.Equal(t, once, twice)
	assert.Empty(t, respans)
}

func TestProject_IgnoredPhrases(t *testing.T) {
	p := newTestProjector()

	out, spans := p.Project(
		`<html><body><p>pay the FEE</p></body></html>`,
		[]string{catalog.PaymentRequest},
		Options{IgnoredPhrases: []string{"fee"}},
	)

	require.Len(t, spans, 1)
	assert.Equal(t, "pay", spans[0].Text)
	assert.NotContains(t, out, `>FEE</mark>`)
}

func TestProject_UnknownPatternsLeaveDocumentUnchanged(t *testing.T) {
	p := newTestProjector()
	in := `<html><body><p>pay the fee</p></body></html>`

	out, spans := p.Project(in, []string{"No Such Category"}, Options{})

	assert.Equal(t, in, out)
	assert.Empty(t, spans)
}

func TestProject_NoPatternsLeaveDocumentUnchanged(t *testing.T) {
	p := newTestProjector()
	in := `<p>pay the fee</p>`

	out, spans := p.Project(in, nil, Options{})

	assert.Equal(t, in, out)
	assert.Empty(t, spans)
}
