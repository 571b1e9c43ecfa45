package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/olex-green/family-budget/internal/model"
)

// OFXParser parses OFX/QFX statement downloads, covering both bank and
// credit card statements in a single response.
type OFXParser struct {
	// Now supplies the import timestamp used to derive candidate ids.
	Now func() time.Time
}

// NewOFXParser creates a parser using the wall clock for ids.
func NewOFXParser() *OFXParser {
	return &OFXParser{Now: time.Now}
}

// Format returns the parser name.
func (p *OFXParser) Format() string { return "ofx" }

// Parse reads an OFX response and returns candidate transactions.
func (p *OFXParser) Parse(r io.Reader) ([]model.Transaction, error) {
	resp, err := ofxgo.ParseResponse(r)
	if err != nil {
		return nil, fmt.Errorf("reading OFX: %w", err)
	}

	msgs := append(resp.Bank, resp.CreditCard...)
	if len(msgs) == 0 {
		return nil, errors.New("OFX response contains no bank or credit card statements")
	}

	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	batch := now.UnixMilli()

	var txns []model.Transaction
	index := 0
	for _, msg := range msgs {
		var stmts []ofxgo.Transaction
		switch m := msg.(type) {
		case *ofxgo.StatementResponse:
			if m.BankTranList != nil {
				stmts = m.BankTranList.Transactions
			}
		case *ofxgo.CCStatementResponse:
			if m.BankTranList != nil {
				stmts = m.BankTranList.Transactions
			}
		default:
			continue
		}

		for _, str := range stmts {
			amount, err := decimal.NewFromString(str.TrnAmt.String())
			if err != nil {
				return nil, fmt.Errorf("transaction %s: parsing amount %q: %w", str.FiTID, str.TrnAmt.String(), err)
			}

			posted := str.DtPosted.Time
			txns = append(txns, model.Transaction{
				ID:          fmt.Sprintf("tx-%d-%d", batch, index),
				Date:        model.NewDate(posted.Year(), posted.Month(), posted.Day()),
				Amount:      amount,
				Description: ofxDescription(str),
				Category:    model.Uncategorized,
				SourceLine:  "ofx:" + string(str.FiTID),
			})
			index++
		}
	}
	return txns, nil
}

// ofxDescription merges NAME and MEMO; some banks put the useful text in
// either one.
func ofxDescription(str ofxgo.Transaction) string {
	name := strings.TrimSpace(string(str.Name))
	memo := strings.TrimSpace(string(str.Memo))

	switch {
	case name == "" && memo == "":
		return "Unknown"
	case name == "":
		return memo
	case memo == "" || memo == name:
		return name
	default:
		return name + " " + memo
	}
}
