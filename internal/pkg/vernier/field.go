//
// Copyright (c) 2020, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package vernier

import "fmt"

// Field identifies one of the values of a TimingRecord
type Field string

const (
	FieldTime         Field = "time"
	FieldCumulative   Field = "cumulative_time"
	FieldSelf         Field = "self_time"
	FieldTotal        Field = "total_time"
	FieldNumCalls     Field = "num_calls"
	FieldSelfPerCall  Field = "self_per_call"
	FieldTotalPerCall Field = "total_per_call"
)

// Fields lists all the fields in the order of the columns of a vernier output file
var Fields = []Field{
	FieldTime,
	FieldCumulative,
	FieldSelf,
	FieldTotal,
	FieldNumCalls,
	FieldSelfPerCall,
	FieldTotalPerCall,
}

// short names, as used in the column headers of vernier outputs
var fieldAliases = map[string]Field{
	"cumul": FieldCumulative,
	"self":  FieldSelf,
	"total": FieldTotal,
}

// ParseField converts a string into a Field
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	if f, ok := fieldAliases[name]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown field %q", name)
}

// Value returns the value of a given field of the record
func (r *TimingRecord) Value(f Field) (float64, error) {
	switch f {
	case FieldTime:
		return r.Time, nil
	case FieldCumulative:
		return r.Cumulative, nil
	case FieldSelf:
		return r.Self, nil
	case FieldTotal:
		return r.Total, nil
	case FieldNumCalls:
		return float64(r.NumCalls), nil
	case FieldSelfPerCall:
		return r.SelfPerCall, nil
	case FieldTotalPerCall:
		return r.TotalPerCall, nil
	}
	return 0, fmt.Errorf("unknown field %q", f)
}
