// Package legacy parses hierarchical document-store exports produced by the
// previous generation of the pigmi console and normalizes them into canonical
// domain records. Historical exports are inconsistent about field names and
// shapes (mobile/mobileNumber/phone, route as string or array, amounts as
// numbers or strings, transactions duplicated under a per-agent mirror and a
// flat global path); none of those variants leak past this package.
package legacy

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	"github.com/Mubina-Mulla/Pigmi/internal/utils/ledger"
	"github.com/shopspring/decimal"
)

// Export is the canonical result of parsing one legacy dump.
type Export struct {
	Customers []domain.Customer
	// Transactions are keyed by account number, each list already merged
	// across the nested mirror and the flat path.
	Transactions map[string][]domain.Transaction
	Agents       []domain.Agent
	Routes       []domain.Route
}

// flexString accepts JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value %s is neither string nor number", data)
	}
	*f = flexString(n.String())
	return nil
}

// flexAmount accepts amounts encoded as JSON numbers or numeric strings.
type flexAmount struct{ decimal.Decimal }

func (f *flexAmount) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	if s == "" {
		f.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(string(s))
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", s, err)
	}
	f.Decimal = d
	return nil
}

// flexStrings accepts a single string, a JSON array of strings, or null.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*f = nil
			return nil
		}
		*f = flexStrings{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("value %s is neither string nor string array", data)
	}
	*f = flexStrings(many)
	return nil
}

type rawCustomer struct {
	Name         string     `json:"name"`
	CustomerName string     `json:"customerName"`
	Mobile       string     `json:"mobile"`
	MobileNumber string     `json:"mobileNumber"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Village      string     `json:"village"`
	IDNumber     flexString `json:"idNumber"`
	AgentName    string     `json:"agentName"`
	Route        flexStrings `json:"route"`

	DepositAmount   *flexAmount `json:"depositAmount"`
	TotalAmount     *flexAmount `json:"totalAmount"`
	Balance         *flexAmount `json:"balance"`
	WithdrawnAmount *flexAmount `json:"withdrawnAmount"`
	Withdrawn       *flexAmount `json:"withdrawn"`

	Status                string      `json:"status"`
	InterestApplied       bool        `json:"interestApplied"`
	AppliedInterestAmount *flexAmount `json:"appliedInterestAmount"`
	AppliedInterestRate   *flexAmount `json:"appliedInterestRate"`
	LastInterestApplied   *int64      `json:"lastInterestApplied"`
	CreatedDate           int64       `json:"createdDate"`
	LastUpdated           int64       `json:"lastUpdated"`
	CreatedBy             string      `json:"createdBy"`
}

type rawTransaction struct {
	Type        string     `json:"type"`
	Amount      flexAmount `json:"amount"`
	Date        string     `json:"date"`
	Timestamp   int64      `json:"timestamp"`
	Mode        string     `json:"mode"`
	PhoneNumber string     `json:"phoneNumber"`
	Note        string     `json:"note"`
	AddedBy     string     `json:"addedBy"`
}

type rawAgentCustomer struct {
	rawCustomer
	Transactions map[string]rawTransaction `json:"transactions"`
}

type rawAgent struct {
	Mobile       string      `json:"mobile"`
	MobileNumber string      `json:"mobileNumber"`
	Address      string      `json:"address"`
	Route        flexStrings `json:"route"`
	CreatedDate  int64       `json:"createdDate"`
	LastUpdated  int64       `json:"lastUpdated"`

	// Legacy per-agent mirror of customers and their transactions.
	Customers map[string]rawAgentCustomer `json:"customers"`
}

type rawRoute struct {
	Villages    flexStrings `json:"villages"`
	CreatedDate int64       `json:"createdDate"`
	LastUpdated int64       `json:"lastUpdated"`
}

type rawExport struct {
	Customers    map[string]rawCustomer               `json:"customers"`
	Transactions map[string]map[string]rawTransaction `json:"transactions"`
	Agents       map[string]rawAgent                  `json:"agents"`
	Routes       map[string]rawRoute                  `json:"routes"`
}

// firstNonEmpty returns the first non-empty string, mirroring the coalescing
// the historical UI applied when reading records.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func amountOf(candidates ...*flexAmount) decimal.Decimal {
	for _, c := range candidates {
		if c != nil {
			return c.Decimal
		}
	}
	return decimal.Zero
}

func (r rawCustomer) canonical(accountNo string) domain.Customer {
	status := domain.CustomerStatus(r.Status)
	if status == "" {
		status = domain.StatusActive
	}
	return domain.Customer{
		AccountNo:             accountNo,
		Name:                  firstNonEmpty(r.Name, r.CustomerName),
		Mobile:                firstNonEmpty(r.Mobile, r.MobileNumber, r.Phone),
		Address:               r.Address,
		Village:               r.Village,
		IDNumber:              string(r.IDNumber),
		AgentName:             r.AgentName,
		Route:                 []string(r.Route),
		TotalAmount:           amountOf(r.DepositAmount, r.TotalAmount, r.Balance),
		WithdrawnAmount:       amountOf(r.WithdrawnAmount, r.Withdrawn),
		Status:                status,
		InterestApplied:       r.InterestApplied,
		AppliedInterestAmount: amountOf(r.AppliedInterestAmount),
		AppliedInterestRate:   amountOf(r.AppliedInterestRate),
		LastInterestApplied:   r.LastInterestApplied,
		CreatedDate:           r.CreatedDate,
		LastUpdated:           r.LastUpdated,
		CreatedBy:             r.CreatedBy,
	}
}

func (r rawTransaction) canonical(txnID, accountNo string) domain.Transaction {
	mode := domain.PaymentMode(r.Mode)
	if r.Mode == "" {
		mode = domain.ModeCash
	}
	return domain.Transaction{
		TransactionID: txnID,
		AccountNo:     accountNo,
		Type:          domain.TransactionType(r.Type),
		Amount:        r.Amount.Decimal,
		Date:          r.Date,
		Timestamp:     r.Timestamp,
		Mode:          mode,
		PhoneNumber:   r.PhoneNumber,
		Note:          r.Note,
		AddedBy:       r.AddedBy,
	}
}

func sortedTxns(m map[string]rawTransaction, accountNo string) []domain.Transaction {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	txns := make([]domain.Transaction, 0, len(m))
	for _, id := range ids {
		txns = append(txns, m[id].canonical(id, accountNo))
	}
	return txns
}

// Parse decodes a legacy export and returns canonical records. Transactions
// found under both the per-agent mirror and the flat global path are merged
// with the flat path winning, matching how the historical readers resolved
// the duplication.
func Parse(data []byte) (*Export, error) {
	var raw rawExport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding legacy export: %w", err)
	}

	out := &Export{Transactions: make(map[string][]domain.Transaction)}

	acctNos := make([]string, 0, len(raw.Customers))
	for acct := range raw.Customers {
		acctNos = append(acctNos, acct)
	}
	sort.Strings(acctNos)
	for _, acct := range acctNos {
		out.Customers = append(out.Customers, raw.Customers[acct].canonical(acct))
	}

	// Nested mirror first so the flat path overrides it in the merge.
	nested := make(map[string][]domain.Transaction)
	agentNames := make([]string, 0, len(raw.Agents))
	for name := range raw.Agents {
		agentNames = append(agentNames, name)
	}
	sort.Strings(agentNames)
	for _, name := range agentNames {
		a := raw.Agents[name]
		out.Agents = append(out.Agents, domain.Agent{
			Name:        name,
			Mobile:      firstNonEmpty(a.Mobile, a.MobileNumber),
			Address:     a.Address,
			Route:       []string(a.Route),
			CreatedDate: a.CreatedDate,
			LastUpdated: a.LastUpdated,
		})
		mirrorAccts := make([]string, 0, len(a.Customers))
		for acct := range a.Customers {
			mirrorAccts = append(mirrorAccts, acct)
		}
		sort.Strings(mirrorAccts)
		for _, acct := range mirrorAccts {
			nested[acct] = append(nested[acct], sortedTxns(a.Customers[acct].Transactions, acct)...)
		}
	}

	flatAccts := make([]string, 0, len(raw.Transactions))
	for acct := range raw.Transactions {
		flatAccts = append(flatAccts, acct)
	}
	sort.Strings(flatAccts)

	seen := make(map[string]bool)
	for _, acct := range flatAccts {
		out.Transactions[acct] = ledger.Merge(nested[acct], sortedTxns(raw.Transactions[acct], acct))
		seen[acct] = true
	}
	for acct, txns := range nested {
		if !seen[acct] {
			out.Transactions[acct] = ledger.Merge(txns)
		}
	}

	routeNames := make([]string, 0, len(raw.Routes))
	for name := range raw.Routes {
		routeNames = append(routeNames, name)
	}
	sort.Strings(routeNames)
	for _, name := range routeNames {
		r := raw.Routes[name]
		out.Routes = append(out.Routes, domain.Route{
			Name:        name,
			Villages:    []string(r.Villages),
			CreatedDate: r.CreatedDate,
			LastUpdated: r.LastUpdated,
		})
	}

	return out, nil
}
