package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQuoteBankCoversFusionLabels(t *testing.T) {
	bank := DefaultQuoteBank()
	for _, label := range []Label{Happy, Sad, Neutral, Stress, Frustrated, Calm} {
		assert.True(t, bank.Has(label), label)
		q := bank.Pick(label)
		assert.NotEmpty(t, q.Quote)
		assert.NotEmpty(t, q.Desc)
	}
}

func TestPickFallsBackToNeutral(t *testing.T) {
	bank, err := NewQuoteBank([]byte("neutral:\n  - quote: steady\n    author: someone\n    desc: keep going\n"))
	require.NoError(t, err)

	q := bank.Pick(Anxiety)
	assert.Equal(t, "steady", q.Quote)
	assert.Equal(t, `"steady" — someone`, q.Formatted())
}

func TestPickUsesRandomIndex(t *testing.T) {
	bank := DefaultQuoteBank()
	bank.intn = func(n int) int { return n - 1 }
	q := bank.Pick(Happy)
	assert.Equal(t, "Confucius", q.Author)
}

func TestNewQuoteBankRequiresNeutral(t *testing.T) {
	_, err := NewQuoteBank([]byte("happy:\n  - quote: x\n"))
	assert.Error(t, err)

	_, err = NewQuoteBank([]byte("::not yaml"))
	assert.Error(t, err)
}
