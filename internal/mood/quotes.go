package mood

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed quotes.yaml
var defaultQuotes []byte

// Quote is one curated quote with a short reflection.
type Quote struct {
	Quote  string `yaml:"quote" json:"quote"`
	Author string `yaml:"author" json:"author"`
	Desc   string `yaml:"desc" json:"desc"`
}

// Formatted renders the quote with its author.
func (q Quote) Formatted() string {
	if q.Author == "" {
		return fmt.Sprintf("%q", q.Quote)
	}
	return fmt.Sprintf("\"%s\" — %s", q.Quote, q.Author)
}

// QuoteBank holds quotes keyed by mood label.
type QuoteBank struct {
	quotes map[Label][]Quote
	intn   func(n int) int
}

// NewQuoteBank parses a YAML bank of label -> quotes. It requires a neutral entry.
func NewQuoteBank(data []byte) (*QuoteBank, error) {
	var raw map[string][]Quote
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse quote bank: %w", err)
	}
	quotes := make(map[Label][]Quote, len(raw))
	for key, list := range raw {
		if len(list) == 0 {
			continue
		}
		quotes[Label(normalize(key))] = list
	}
	if len(quotes[Neutral]) == 0 {
		return nil, fmt.Errorf("quote bank has no %q entries", Neutral)
	}
	return &QuoteBank{quotes: quotes, intn: rand.IntN}, nil
}

// DefaultQuoteBank returns the embedded bank.
func DefaultQuoteBank() *QuoteBank {
	bank, err := NewQuoteBank(defaultQuotes)
	if err != nil {
		panic(err)
	}
	return bank
}

// Pick returns a random quote for label, falling back to neutral.
func (b *QuoteBank) Pick(label Label) Quote {
	list, ok := b.quotes[label]
	if !ok {
		list = b.quotes[Neutral]
	}
	return list[b.intn(len(list))]
}

// Has reports whether label has its own bank entry.
func (b *QuoteBank) Has(label Label) bool {
	_, ok := b.quotes[label]
	return ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
