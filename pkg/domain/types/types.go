package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Year is a calendar year used as part of the cache key and the upstream query
type Year int

// Int returns the year as int
func (y Year) Int() int {
	return int(y)
}

// String returns the decimal representation
func (y Year) String() string {
	return strconv.Itoa(int(y))
}

// PageNo is a 1-origin page number of the upstream API
type PageNo int

// Int returns the page number as int
func (p PageNo) Int() int {
	return int(p)
}

// Validate checks that the page number is 1 or greater
func (p PageNo) Validate() error {
	if p < 1 {
		return goerr.New("page number must be 1 or greater", goerr.V("page", int(p)))
	}
	return nil
}

// Sequence is the advisory sequence number issued by the source system.
// The upstream API emits it either as a JSON number or as a numeric string.
type Sequence int64

// Int64 returns the sequence as int64
func (s Sequence) Int64() int64 {
	return int64(s)
}

// UnmarshalJSON accepts both 123 and "123"
func (s *Sequence) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		*s = 0
		return nil
	}

	if len(raw) > 0 && raw[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return goerr.Wrap(err, "failed to decode sequence string")
		}
		str = strings.TrimSpace(str)
		if str == "" {
			*s = 0
			return nil
		}
		raw = []byte(str)
	}

	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid sequence number", goerr.V("value", string(data)))
	}
	*s = Sequence(v)
	return nil
}

// Reading is an optional pollutant concentration. A nil Reading means the
// value was absent (empty string or null in the upstream payload).
type Reading struct {
	value *float64
}

// NewReading creates a present reading
func NewReading(v float64) Reading {
	return Reading{value: &v}
}

// Valid returns true when the reading is present
func (r Reading) Valid() bool {
	return r.value != nil
}

// Float64 returns the reading and its presence
func (r Reading) Float64() (float64, bool) {
	if r.value == nil {
		return 0, false
	}
	return *r.value, true
}

// String returns the reading in the upstream textual form, or "" if absent
func (r Reading) String() string {
	if r.value == nil {
		return ""
	}
	return strconv.FormatFloat(*r.value, 'f', -1, 64)
}

// MarshalJSON emits the reading as a number, or an empty string when absent
// so that a round trip through the cache keeps the upstream shape.
func (r Reading) MarshalJSON() ([]byte, error) {
	if r.value == nil {
		return []byte(`""`), nil
	}
	return json.Marshal(*r.value)
}

// MarshalYAML emits the reading as a number, or an empty string when absent
func (r Reading) MarshalYAML() (any, error) {
	if r.value == nil {
		return "", nil
	}
	return *r.value, nil
}

// UnmarshalJSON accepts numbers, numeric strings, "" and null
func (r *Reading) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		r.value = nil
		return nil
	}

	if len(raw) > 0 && raw[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return goerr.Wrap(err, "failed to decode reading string")
		}
		str = strings.TrimSpace(str)
		if str == "" || str == "-" {
			r.value = nil
			return nil
		}
		raw = []byte(str)
	}

	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return goerr.Wrap(err, "invalid reading", goerr.V("value", string(data)))
	}
	r.value = &v
	return nil
}

// IssueGbn is the severity label attached to an advisory
type IssueGbn string

const (
	// IssueGbnWatch is the lower severity level (주의보)
	IssueGbnWatch IssueGbn = "주의보"
	// IssueGbnWarning is the higher severity level (경보)
	IssueGbnWarning IssueGbn = "경보"
)

// String returns the label
func (g IssueGbn) String() string {
	return string(g)
}

// Badge classifies the label into a display badge
func (g IssueGbn) Badge() Badge {
	switch g {
	case IssueGbnWatch:
		return BadgeWarning
	case IssueGbnWarning:
		return BadgeDanger
	default:
		return BadgeDefault
	}
}

// Badge is the display category of a district card
type Badge string

const (
	BadgeWarning Badge = "badge-warning"
	BadgeDanger  Badge = "badge-danger"
	BadgeDefault Badge = "badge-default"
)

// String returns the badge class name
func (b Badge) String() string {
	return string(b)
}

// ItemCode is the pollutant category
type ItemCode string

const (
	ItemCodePM10 ItemCode = "PM10"
	ItemCodePM25 ItemCode = "PM25"
)

// String returns the code
func (c ItemCode) String() string {
	return string(c)
}

// Unit returns the measurement unit for the pollutant, or "" if unknown
func (c ItemCode) Unit() string {
	switch c {
	case ItemCodePM10, ItemCodePM25:
		return "㎍/㎥"
	default:
		return ""
	}
}

// MonthFilter is the user-selected lookback window in months
type MonthFilter int

// MonthFilterOptions are the lookback windows offered to users
var MonthFilterOptions = []MonthFilter{1, 2, 3}

// Int returns the number of months
func (m MonthFilter) Int() int {
	return int(m)
}

// IsValid checks if the filter is one of MonthFilterOptions
func (m MonthFilter) IsValid() bool {
	for _, opt := range MonthFilterOptions {
		if m == opt {
			return true
		}
	}
	return false
}

// Validate returns an error if the filter is not one of MonthFilterOptions
func (m MonthFilter) Validate() error {
	if !m.IsValid() {
		return goerr.New("month filter must be one of 1, 2, 3", goerr.V("months", int(m)))
	}
	return nil
}

// SortOrder is the preferred display order
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// IsValid checks if the sort order is known
func (o SortOrder) IsValid() bool {
	switch o {
	case SortOrderAsc, SortOrderDesc:
		return true
	default:
		return false
	}
}
