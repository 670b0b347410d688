package model_test

import (
	"testing"
	"time"

	"tourismrelay/shared/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Value(t *testing.T) {
	value, err := model.StringList{"guided_walk", "homestay"}.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`["guided_walk","homestay"]`), value)

	value, err = model.StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)
}

func TestStringList_Scan(t *testing.T) {
	var list model.StringList

	require.NoError(t, list.Scan([]byte(`["guided_walk"]`)))
	assert.Equal(t, model.StringList{"guided_walk"}, list)

	require.NoError(t, list.Scan(`["homestay","bush_breakfast"]`))
	assert.Equal(t, model.StringList{"homestay", "bush_breakfast"}, list)

	require.NoError(t, list.Scan(nil))
	assert.Nil(t, list)

	assert.Error(t, list.Scan(42))
}

func TestJSONMap(t *testing.T) {
	var details model.JSONMap

	require.NoError(t, details.Scan([]byte(`{"msisdn":"254712345678","first_name":"Jane"}`)))
	assert.Equal(t, "Jane", details["first_name"])

	value, err := model.JSONMap{"channel": "push"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"channel":"push"}`, string(value.([]byte)))

	require.NoError(t, details.Scan(nil))
	assert.Nil(t, details)
}

func TestNewMetadata(t *testing.T) {
	meta := model.NewMetadata("steward", fixedTime)

	assert.Equal(t, fixedTime, meta.CreatedAt)
	assert.Equal(t, fixedTime, meta.ModifiedAt)
	assert.Equal(t, "steward", meta.CreatedBy)
	assert.Equal(t, "steward", meta.ModifiedBy)
}

var fixedTime = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
