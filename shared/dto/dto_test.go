package dto_test

import (
	"testing"

	"tourismrelay/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name          string
		filter        dto.Filter
		expectedWhere string
		expectedArgs  map[string]any
	}{
		{
			name:          "equal with table",
			filter:        dto.Filter{Field: "payment_status", Value: "pending_push", Operator: dto.FilterOperatorEq, Table: "bookings"},
			expectedWhere: "bookings.payment_status = :payment_status",
			expectedArgs:  map[string]any{"payment_status": "pending_push"},
		},
		{
			name:          "not equal with arg name",
			filter:        dto.Filter{ArgName: "paid", Field: "payment_status", Value: "paid", Operator: dto.FilterOperatorNotEq},
			expectedWhere: "payment_status != :paid",
			expectedArgs:  map[string]any{"paid": "paid"},
		},
		{
			name:          "in slice",
			filter:        dto.Filter{Field: "channel", Value: []string{"push", "confirmation"}, Operator: dto.FilterOperatorIn},
			expectedWhere: "channel IN (:channel_0, :channel_1) ",
			expectedArgs:  map[string]any{"channel_0": "push", "channel_1": "confirmation"},
		},
		{
			name:          "is null",
			filter:        dto.Filter{Field: "amount_paid", Operator: dto.FilterIsNull},
			expectedWhere: "amount_paid IS NULL",
			expectedArgs:  map[string]any{},
		},
		{
			name:          "in with scalar",
			filter:        dto.Filter{Field: "channel", Value: "push", Operator: dto.FilterOperatorIn},
			expectedWhere: "channel = :channel",
			expectedArgs:  map[string]any{"channel": "push"},
		},
		{
			name:          "unknown operator",
			filter:        dto.Filter{Field: "x", Operator: "nope"},
			expectedWhere: "",
			expectedArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.expectedWhere, where)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "payment_status", Value: "pending_push", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "tourist_suffix", Field: "tourist_phone_suffix", Value: "712345678", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "push_suffix", Field: "push_phone_suffix", Value: "712345678", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(payment_status = :payment_status AND (tourist_phone_suffix = :tourist_suffix OR push_phone_suffix = :push_suffix))", where)
	assert.Len(t, args, 3)

	skipped := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: "x", Operator: "nope"}, dto.Filter{Field: "code", Value: "V1", Operator: dto.FilterOperatorEq}},
	}
	where, _ = skipped.GetWhereClause()
	assert.Equal(t, "(code = :code)", where)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()
	assert.Empty(t, where)
	assert.Empty(t, args)
}
