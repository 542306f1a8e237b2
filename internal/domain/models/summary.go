package models

import "time"

// CustomerSummary holds the per-customer totals produced by the collection
// summary aggregation.
type CustomerSummary struct {
	CustomerSeqNo int64   `bson:"customer_c_id" json:"customerCid"`
	Name          string  `bson:"c_name" json:"name"`
	TotalQty      float64 `bson:"total_qty" json:"totalQty"`
	TotalAmount   float64 `bson:"total_amount" json:"totalAmount"`
	TotalSnf      float64 `bson:"total_snf" json:"totalSnf"`
}

// GrandTotals are the sums across all customer groups of a summary.
type GrandTotals struct {
	Qty     float64 `json:"qty"`
	Amount  float64 `json:"amount"`
	Snf     float64 `json:"snf"`
	Payable float64 `json:"payable"`
}

// Summary is the full collection report: one row per customer plus the
// grand totals.
type Summary struct {
	Customers []CustomerSummary `json:"customers"`
	Totals    GrandTotals       `json:"grandTotals"`
}

// DateWindow is an inclusive entry-date range. Boundaries are always whole
// calendar days in UTC: Start is midnight of its day, End is the last
// millisecond of its day.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// NewDateWindow builds the inclusive window covering the calendar days of
// start through end, in UTC.
func NewDateWindow(start, end time.Time) DateWindow {
	return DateWindow{
		Start: startOfDayUTC(start),
		End:   startOfDayUTC(end).Add(24*time.Hour - time.Millisecond),
	}
}

// SingleDayWindow covers exactly one calendar day in UTC.
func SingleDayWindow(day time.Time) DateWindow {
	return NewDateWindow(day, day)
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
