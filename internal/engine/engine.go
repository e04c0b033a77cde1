// Package engine implements the declarative extractor: a single Extractor
// whose behavior is driven entirely by an ExtractionSpec. Processing one
// document is a pure, synchronous computation over immutable inputs, so
// one engine can serve any number of concurrent documents.
package engine

import (
	"fmt"
	"regexp"

	"ledgerlens/statement-extractor/internal/amounts"
	"ledgerlens/statement-extractor/internal/classify"
	"ledgerlens/statement-extractor/internal/columns"
	"ledgerlens/statement-extractor/internal/dates"
	"ledgerlens/statement-extractor/internal/extracterror"
	"ledgerlens/statement-extractor/internal/filters"
	"ledgerlens/statement-extractor/internal/logging"
	"ledgerlens/statement-extractor/internal/models"
	"ledgerlens/statement-extractor/internal/spec"
	"ledgerlens/statement-extractor/internal/textutils"
)

// Engine executes one validated extraction spec.
type Engine struct {
	spec       *spec.ExtractionSpec
	log        logging.Logger
	dates      *dates.Parser
	classifier *classify.Classifier
	rowFilter  *filters.RowFilter
	cleanup    []*regexp.Regexp
	account    []accountRule
	period     []periodRule
}

// New compiles a validated spec into a ready engine. Compile errors here
// mean the spec slipped past validation, but they still surface instead of
// panicking later.
func New(s *spec.ExtractionSpec, log logging.Logger) (*Engine, error) {
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	log = log.WithField(logging.FieldExtractor, s.Name)

	dateParser, err := dates.New(s.Dates)
	if err != nil {
		return nil, fmt.Errorf("spec %s: %w", s.Name, err)
	}
	rowFilter, err := filters.NewRowFilter(s.RowFilters)
	if err != nil {
		return nil, fmt.Errorf("spec %s: row filters: %w", s.Name, err)
	}
	cleanup, err := textutils.CompilePatterns(s.MerchantCleanup.RemovePatterns)
	if err != nil {
		return nil, fmt.Errorf("spec %s: merchant_cleanup: %w", s.Name, err)
	}
	account, err := compileAccountRules(s.AccountNameInference)
	if err != nil {
		return nil, fmt.Errorf("spec %s: account_name_inference: %w", s.Name, err)
	}
	period, err := compilePeriodRules(s.StatementPeriod)
	if err != nil {
		return nil, fmt.Errorf("spec %s: statement_period: %w", s.Name, err)
	}

	return &Engine{
		spec:       s,
		log:        log,
		dates:      dateParser,
		classifier: classify.New(s.SignClassification),
		rowFilter:  rowFilter,
		cleanup:    cleanup,
		account:    account,
		period:     period,
	}, nil
}

// Name returns the spec's extractor name.
func (e *Engine) Name() string { return e.spec.Name }

// Spec exposes the loaded rule document for inspection.
func (e *Engine) Spec() *spec.ExtractionSpec { return e.spec }

// Extract runs the full pipeline: per table resolve columns, then per row
// filter, resolve amount, parse date, classify, and merge continuations;
// finally attach statement metadata. A document yielding zero transactions
// is a valid empty result.
func (e *Engine) Extract(doc models.Document) (models.ExtractionResult, error) {
	result := models.ExtractionResult{
		Metadata: e.buildMetadata(doc),
	}

	ref := e.dates.Reference(result.Metadata.PeriodEnd, doc.Text)

	usable := 0
	for ti, table := range doc.Tables {
		if filters.SkipTable(table.Header, e.spec.TableFilters.SkipIfAll) {
			e.log.Debug("Skipping table by header predicate",
				logging.Field{Key: logging.FieldTable, Value: ti})
			continue
		}
		resolved := columns.Resolve(table.Header, e.spec.Columns)
		if !resolved.Usable() {
			e.log.Debug("Skipping table: required column roles did not resolve",
				logging.Field{Key: logging.FieldTable, Value: ti})
			continue
		}
		usable++
		e.extractTable(ti, table, resolved, ref, &result)
	}

	if usable == 0 && len(doc.Tables) > 0 {
		diag := &extracterror.AmbiguousColumnError{Role: "date/description/amount", Tables: len(doc.Tables)}
		e.log.WithError(diag).Warn("No table resolved the required column roles; returning empty result",
			logging.Field{Key: logging.FieldCount, Value: len(doc.Tables)})
	}

	e.log.Info("Extraction finished",
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)})
	return result, nil
}

// extractTable processes one table's rows. The continuation pointer is
// table-local: a wrapped row never attaches across tables.
func (e *Engine) extractTable(ti int, table models.Table, resolved columns.Resolved, ref dates.Reference, result *models.ExtractionResult) {
	dateIdx, _ := resolved.Index(columns.RoleDate)
	descIdx, _ := resolved.Index(columns.RoleDescription)

	// Index into result.Transactions of the last accepted transaction in
	// this table; appends may reallocate the slice, so a pointer would go
	// stale.
	last := -1

	reject := func(ri int, reason string) {
		result.Rejections = append(result.Rejections, models.RowRejection{
			Table: ti, Row: ri, Reason: reason,
		})
		e.log.Debug("Row rejected",
			logging.Field{Key: logging.FieldTable, Value: ti},
			logging.Field{Key: logging.FieldRow, Value: ri},
			logging.Field{Key: logging.FieldReason, Value: reason})
	}

	for ri, row := range table.Rows {
		desc := textutils.CollapseWhitespace(table.Cell(row, descIdx))

		// Amount resolution runs before the row filters: a row with no
		// parseable amount is a continuation candidate, and that has to
		// be decided before anything else discards the row.
		res, ok := amounts.Resolve(table, row, resolved, e.spec.AmountResolution)
		if !ok {
			e.handleContinuation(ri, desc, last, result, reject)
			continue
		}

		if desc == "" {
			reject(ri, "empty description")
			continue
		}
		if e.rowFilter.Skip(desc) {
			reject(ri, "description filtered")
			continue
		}

		date, err := e.dates.Parse(table.Cell(row, dateIdx), ref)
		if err != nil {
			reject(ri, fmt.Sprintf("unparseable date: %v", err))
			continue
		}

		tag := e.classifier.Classify(desc, res)
		if e.spec.RowFilters.SpendOnly && tag != models.TagSpend {
			reject(ri, fmt.Sprintf("non-spend row excluded (%s)", tag))
			continue
		}
		amount := res.Amount
		if tag != models.TagSpend && e.spec.AmountResolution.Absolute() {
			amount = amount.Neg()
		}

		merchant := e.cleanMerchant(desc)
		tx := models.NewTransaction(date, merchant, amount, desc, tag)
		result.Transactions = append(result.Transactions, tx)
		last = len(result.Transactions) - 1
	}
}

// handleContinuation folds a row without a parseable amount into the
// preceding accepted transaction, unless it looks like a summary line.
func (e *Engine) handleContinuation(ri int, desc string, last int, result *models.ExtractionResult, reject func(int, string)) {
	ml := e.spec.Multiline
	if !ml.Enabled || last < 0 || desc == "" {
		reject(ri, "no parseable amount")
		return
	}
	if ml.SkipAppendIfSummary && e.rowFilter.Skip(desc) {
		reject(ri, "summary continuation discarded")
		return
	}
	appended := e.cleanMerchant(desc)
	if appended != "" {
		tx := &result.Transactions[last]
		tx.Merchant = textutils.CollapseWhitespace(tx.Merchant + " " + appended)
		tx.RawDescription = tx.RawDescription + " " + desc
	}
}

func (e *Engine) cleanMerchant(desc string) string {
	return textutils.ApplyCleanup(desc, e.cleanup, true)
}

func (e *Engine) buildMetadata(doc models.Document) models.StatementMetadata {
	meta := models.StatementMetadata{
		Institution: e.spec.Institution,
		AccountType: e.spec.AccountType,
	}
	meta.PeriodStart, meta.PeriodEnd = e.extractPeriod(doc.Text)

	name, typeOverride := e.inferAccountName(doc.Text)
	meta.AccountName = name
	if typeOverride != "" {
		meta.AccountType = typeOverride
	}
	return meta
}
