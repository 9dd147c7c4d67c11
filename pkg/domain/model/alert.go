package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/types"
)

// Date and time layouts used by the advisory API
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = DateLayout + " " + TimeLayout
)

// AlertRecord is one particulate-matter advisory event
type AlertRecord struct {
	Sn           types.Sequence `json:"sn" yaml:"sn"`
	DataDate     string         `json:"dataDate,omitempty" yaml:"dataDate,omitempty"`
	DistrictName string         `json:"districtName" yaml:"districtName"`
	MoveName     string         `json:"moveName" yaml:"moveName"`
	ItemCode     types.ItemCode `json:"itemCode" yaml:"itemCode"`
	IssueGbn     types.IssueGbn `json:"issueGbn" yaml:"issueGbn"`
	IssueDate    string         `json:"issueDate" yaml:"issueDate"`
	IssueTime    string         `json:"issueTime" yaml:"issueTime"`
	IssueVal     types.Reading  `json:"issueVal" yaml:"issueVal"`
	ClearDate    string         `json:"clearDate" yaml:"clearDate"`
	ClearTime    string         `json:"clearTime" yaml:"clearTime"`
	ClearVal     types.Reading  `json:"clearVal" yaml:"clearVal"`
}

// Validate checks the record invariants: issue date and time are present and
// parseable, and the clear fields are either all present or all absent.
func (a *AlertRecord) Validate() error {
	if a.IssueDate == "" || a.IssueTime == "" {
		return goerr.New("issue date and time are required",
			goerr.V("sn", a.Sn.Int64()))
	}
	if _, err := a.IssuedAt(time.UTC); err != nil {
		return goerr.Wrap(err, "invalid issue date/time", goerr.V("sn", a.Sn.Int64()))
	}

	present := 0
	for _, ok := range []bool{a.ClearDate != "", a.ClearTime != "", a.ClearVal.Valid()} {
		if ok {
			present++
		}
	}
	switch present {
	case 0:
		return nil
	case 3:
		if _, err := ParseDateTime(a.ClearDate, a.ClearTime, time.UTC); err != nil {
			return goerr.Wrap(err, "invalid clear date/time", goerr.V("sn", a.Sn.Int64()))
		}
		return nil
	default:
		return goerr.New("clear fields are partially populated",
			goerr.V("sn", a.Sn.Int64()),
			goerr.V("clearDate", a.ClearDate),
			goerr.V("clearTime", a.ClearTime),
			goerr.V("clearVal", a.ClearVal.String()),
		)
	}
}

// IsActive returns true when the advisory has not been cleared yet
func (a *AlertRecord) IsActive() bool {
	return a.ClearDate == "" && a.ClearTime == "" && !a.ClearVal.Valid()
}

// IssuedAt combines IssueDate and IssueTime into one instant in loc
func (a *AlertRecord) IssuedAt(loc *time.Location) (time.Time, error) {
	return ParseDateTime(a.IssueDate, a.IssueTime, loc)
}

// IssueDay returns the issue date truncated to the day in loc
func (a *AlertRecord) IssueDay(loc *time.Location) (time.Time, error) {
	return ParseDate(a.IssueDate, loc)
}

// ClearedAt returns the clear instant, or false for an active advisory
func (a *AlertRecord) ClearedAt(loc *time.Location) (time.Time, bool) {
	if a.ClearDate == "" || a.ClearTime == "" {
		return time.Time{}, false
	}
	t, err := ParseDateTime(a.ClearDate, a.ClearTime, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid date", goerr.V("date", date))
	}
	return t, nil
}

// ParseDateTime parses a YYYY-MM-DD date and HH:mm time in loc. The upstream
// API reports midnight at the end of a day as "24:00", which is accepted and
// resolved to 00:00 of the following day.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if clock == "24:00" {
		day, err := ParseDate(date, loc)
		if err != nil {
			return time.Time{}, err
		}
		return day.AddDate(0, 0, 1), nil
	}

	t, err := time.ParseInLocation(DateTimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid date time",
			goerr.V("date", date),
			goerr.V("time", clock))
	}
	return t, nil
}

// AlertResult is the outcome of a successful alert request
type AlertResult struct {
	Items      []AlertRecord `json:"items" yaml:"items"`
	Years      []int         `json:"years" yaml:"years"`
	TotalCount int           `json:"totalCount" yaml:"totalCount"`
}
