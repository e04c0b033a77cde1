package classify

import (
	"sync"
	"testing"

	"ledgerlens/statement-extractor/internal/amounts"
	"ledgerlens/statement-extractor/internal/models"
	"ledgerlens/statement-extractor/internal/spec"

	"github.com/stretchr/testify/assert"
)

func keywordRules() spec.SignRules {
	return spec.SignRules{
		Method:              spec.MethodKeywords,
		CreditKeywords:      []string{"payment", "refund"},
		TransferKeywords:    []string{"transfer"},
		InterestKeywords:    []string{"interest charge"},
		CardPaymentKeywords: []string{"payment thank you"},
	}
}

func TestClassify_KeywordPrecedence(t *testing.T) {
	c := New(keywordRules())

	tests := []struct {
		name        string
		description string
		expected    models.Tag
	}{
		{name: "no match defaults to spend", description: "AMAZON.COM", expected: models.TagSpend},
		{name: "credit keyword", description: "MOBILE PAYMENT RECEIVED", expected: models.TagCredit},
		{name: "transfer keyword", description: "ONLINE TRANSFER TO SAVINGS", expected: models.TagTransfer},
		{name: "interest beats everything", description: "INTEREST CHARGE ON PURCHASES PAYMENT", expected: models.TagInterest},
		{name: "card payment beats credit", description: "ONLINE PAYMENT THANK YOU", expected: models.TagCardPayment},
		{name: "case insensitive", description: "online Payment thank YOU", expected: models.TagCardPayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.description, from(amounts.SourceAmount)))
		})
	}
}

// from builds an amount resolution attributed to the given column family.
func from(source amounts.Source) amounts.Resolution {
	return amounts.Resolution{Source: source}
}

func TestClassify_ColumnsMethod(t *testing.T) {
	yes := true
	c := New(spec.SignRules{Method: spec.MethodColumns, ColumnDeterminesSign: &yes})

	assert.Equal(t, models.TagSpend, c.Classify("ANYTHING", from(amounts.SourceDebit)))
	assert.Equal(t, models.TagCredit, c.Classify("ANYTHING", from(amounts.SourceCredit)))
	// Shared amount column carries no sign information.
	assert.Equal(t, models.TagSpend, c.Classify("PAYMENT RECEIVED", from(amounts.SourceAmount)))
}

func TestClassify_ValueSignWhenColumnNotAuthoritative(t *testing.T) {
	no := false
	c := New(spec.SignRules{Method: spec.MethodColumns, ColumnDeterminesSign: &no})

	assert.Equal(t, models.TagCredit,
		c.Classify("REFUND", amounts.Resolution{Source: amounts.SourceDebit, Negative: true}),
		"negative value outranks the debit column")
	assert.Equal(t, models.TagSpend,
		c.Classify("GROCERY", amounts.Resolution{Source: amounts.SourceDebit}))
	assert.Equal(t, models.TagSpend,
		c.Classify("CORRECTION", amounts.Resolution{Source: amounts.SourceCredit}),
		"positive value outranks the credit column")
}

func TestClassify_ColumnAuthoritativeByDefault(t *testing.T) {
	c := New(spec.SignRules{Method: spec.MethodColumns})

	assert.Equal(t, models.TagSpend,
		c.Classify("REFUND", amounts.Resolution{Source: amounts.SourceDebit, Negative: true}))
	assert.Equal(t, models.TagCredit, c.Classify("ANYTHING", from(amounts.SourceCredit)))
}

func TestClassify_HybridFallsBackToKeywords(t *testing.T) {
	rules := keywordRules()
	rules.Method = spec.MethodHybrid
	c := New(rules)

	assert.Equal(t, models.TagSpend, c.Classify("PAYMENT", from(amounts.SourceDebit)), "column wins when it determines sign")
	assert.Equal(t, models.TagCredit, c.Classify("ANYTHING", from(amounts.SourceCredit)))
	assert.Equal(t, models.TagCredit, c.Classify("MOBILE PAYMENT", from(amounts.SourceAmount)), "shared column falls back to keywords")
	assert.Equal(t, models.TagSpend, c.Classify("AMAZON.COM", from(amounts.SourceAmount)))
}

func TestClassify_EmptyKeywordSets(t *testing.T) {
	c := New(spec.SignRules{Method: spec.MethodKeywords})
	assert.Equal(t, models.TagSpend, c.Classify("ONLINE PAYMENT THANK YOU", from(amounts.SourceAmount)))
}

func TestClassify_ConcurrentUse(t *testing.T) {
	c := New(keywordRules())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				assert.Equal(t, models.TagCardPayment, c.Classify("ONLINE PAYMENT THANK YOU", from(amounts.SourceAmount)))
				assert.Equal(t, models.TagSpend, c.Classify("AMAZON.COM", from(amounts.SourceAmount)))
			}
		}()
	}
	wg.Wait()
}
