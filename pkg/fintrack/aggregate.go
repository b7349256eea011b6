package fintrack

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryKey identifies a category bucket. The zero value is Uncategorized.
type CategoryKey struct {
	Label string
	Known bool
}

// Uncategorized is the key for transactions without a category
var Uncategorized = CategoryKey{}

// KnownCategory returns the key for a named category
func KnownCategory(label string) CategoryKey {
	return CategoryKey{Label: label, Known: true}
}

// String returns the display label
func (k CategoryKey) String() string {
	if !k.Known {
		return "Uncategorized"
	}
	return k.Label
}

// TransactionRecord is the aggregator's view of a transaction
type TransactionRecord struct {
	ID           int64
	Amount       decimal.Decimal
	Kind         TransactionKind
	OccurredOn   Date
	Category     CategoryKey
	AccountLabel string
}

// Record converts an API transaction into an aggregation record
func (tx *Transaction) Record() TransactionRecord {
	rec := TransactionRecord{
		ID:         tx.ID,
		Amount:     tx.Amount,
		Kind:       tx.Kind,
		OccurredOn: DateOf(tx.Date.Time),
	}
	if tx.Category != nil {
		rec.Category = KnownCategory(tx.Category.Name)
	}
	if tx.Account != nil {
		rec.AccountLabel = tx.Account.Name
	}
	return rec
}

// Records converts a list of API transactions
func Records(txs []*Transaction) []TransactionRecord {
	out := make([]TransactionRecord, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.Record())
	}
	return out
}

// Totals holds income and expense sums
type Totals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
}

// Net returns income minus expense
func (t Totals) Net() decimal.Decimal {
	return t.IncomeTotal.Sub(t.ExpenseTotal)
}

func (t *Totals) add(rec TransactionRecord) {
	if rec.Kind == KindIncome {
		t.IncomeTotal = t.IncomeTotal.Add(rec.Amount)
	} else {
		t.ExpenseTotal = t.ExpenseTotal.Add(rec.Amount)
	}
}

// DailyBucket groups the transactions of one calendar day
type DailyBucket struct {
	Date         Date
	Transactions []TransactionRecord
	Totals
}

// MonthlyBucket groups the transactions of one month of a year
type MonthlyBucket struct {
	Year         int
	Month        time.Month
	Transactions []TransactionRecord
	Totals
}

// PeriodSummary totals a whole collection regardless of date
type PeriodSummary struct {
	Totals
}

// checkRecord enforces the input contract: known kind, non-negative amount
func checkRecord(rec TransactionRecord) error {
	if !rec.Kind.Valid() {
		return &AggregationError{RecordID: rec.ID, Err: ErrUnknownKind}
	}
	if rec.Amount.IsNegative() {
		return &AggregationError{RecordID: rec.ID, Err: ErrNegativeAmount}
	}
	return nil
}

// BucketByDay groups records by calendar day. Buckets are ordered newest day
// first; records inside a bucket keep their input order.
func BucketByDay(records []TransactionRecord) ([]DailyBucket, error) {
	index := make(map[time.Time]int)
	buckets := make([]DailyBucket, 0)

	for _, rec := range records {
		if err := checkRecord(rec); err != nil {
			return nil, err
		}

		key := DateOf(rec.OccurredOn.Time)
		i, ok := index[key.Time]
		if !ok {
			i = len(buckets)
			index[key.Time] = i
			buckets = append(buckets, DailyBucket{Date: key})
		}
		buckets[i].Transactions = append(buckets[i].Transactions, rec)
		buckets[i].add(rec)
	}

	sort.Slice(buckets, func(a, b int) bool {
		return buckets[a].Date.After(buckets[b].Date.Time)
	})

	return buckets, nil
}

// BucketByMonth groups records by month. Callers pass records already limited
// to targetYear. Months without records are omitted; the rest are ordered
// January first.
func BucketByMonth(records []TransactionRecord, targetYear int) ([]MonthlyBucket, error) {
	var byMonth [12]*MonthlyBucket

	for _, rec := range records {
		if err := checkRecord(rec); err != nil {
			return nil, err
		}

		m := rec.OccurredOn.Month()
		b := byMonth[m-1]
		if b == nil {
			b = &MonthlyBucket{Year: targetYear, Month: m}
			byMonth[m-1] = b
		}
		b.Transactions = append(b.Transactions, rec)
		b.add(rec)
	}

	buckets := make([]MonthlyBucket, 0, 12)
	for _, b := range byMonth {
		if b != nil {
			buckets = append(buckets, *b)
		}
	}
	return buckets, nil
}

// BucketByCategory sums expense amounts per category. Income records are
// skipped and categories with a zero total are left out.
func BucketByCategory(records []TransactionRecord) (map[CategoryKey]decimal.Decimal, error) {
	totals := make(map[CategoryKey]decimal.Decimal)

	for _, rec := range records {
		if err := checkRecord(rec); err != nil {
			return nil, err
		}
		if rec.Kind != KindExpense {
			continue
		}
		totals[rec.Category] = totals[rec.Category].Add(rec.Amount)
	}

	for k, v := range totals {
		if v.IsZero() {
			delete(totals, k)
		}
	}
	return totals, nil
}

// Summarize totals income and expense over all records
func Summarize(records []TransactionRecord) (PeriodSummary, error) {
	var s PeriodSummary
	for _, rec := range records {
		if err := checkRecord(rec); err != nil {
			return PeriodSummary{}, err
		}
		s.add(rec)
	}
	return s, nil
}

// ElapsedMonths drops months after now's month when year is now's year, so a
// running year shows only months that have happened. Other years pass through.
func ElapsedMonths(buckets []MonthlyBucket, year int, now time.Time) []MonthlyBucket {
	if year != now.Year() {
		return buckets
	}
	out := make([]MonthlyBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.Month <= now.Month() {
			out = append(out, b)
		}
	}
	return out
}

// IncomeShare returns income as a percentage of income+expense, or zero when
// both are zero
func IncomeShare(income, expense decimal.Decimal) decimal.Decimal {
	total := income.Add(expense)
	if total.IsZero() {
		return decimal.Zero
	}
	return income.Div(total).Mul(decimal.NewFromInt(100))
}

// CategoryShare is one category's slice of total expense
type CategoryShare struct {
	Category CategoryKey
	Amount   decimal.Decimal
	Percent  decimal.Decimal
}

// ExpenseShares orders category totals largest first (ties by label, then a
// known category before Uncategorized) and adds each one's percentage of the
// overall expense
func ExpenseShares(totals map[CategoryKey]decimal.Decimal) []CategoryShare {
	sum := decimal.Zero
	for _, v := range totals {
		sum = sum.Add(v)
	}

	shares := make([]CategoryShare, 0, len(totals))
	for k, v := range totals {
		share := CategoryShare{Category: k, Amount: v, Percent: decimal.Zero}
		if !sum.IsZero() {
			share.Percent = v.Div(sum).Mul(decimal.NewFromInt(100))
		}
		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if c := shares[i].Amount.Cmp(shares[j].Amount); c != 0 {
			return c > 0
		}
		if li, lj := shares[i].Category.String(), shares[j].Category.String(); li != lj {
			return li < lj
		}
		return shares[i].Category.Known && !shares[j].Category.Known
	})
	return shares
}

// AccountSummary splits account balances into assets and liabilities
type AccountSummary struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
}

// NetWorth returns assets plus (negative) liabilities
func (s AccountSummary) NetWorth() decimal.Decimal {
	return s.Assets.Add(s.Liabilities)
}

// SummarizeAccounts adds non-negative balances to Assets and negative ones to Liabilities
func SummarizeAccounts(accounts []*Account) AccountSummary {
	var s AccountSummary
	for _, a := range accounts {
		if a.Balance.IsNegative() {
			s.Liabilities = s.Liabilities.Add(a.Balance)
		} else {
			s.Assets = s.Assets.Add(a.Balance)
		}
	}
	return s
}
