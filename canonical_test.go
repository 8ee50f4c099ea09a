package cidgen_test

import (
	"encoding/json"
	"testing"

	"github.com/ipni/cidgen"
	"github.com/stretchr/testify/require"
)

func TestRecord_CanonicalizesToCompactJSON(t *testing.T) {
	record := mustValueOf(t, cidgen.NewRecord(
		cidgen.Field{Name: "key", Value: "value"},
		cidgen.Field{Name: "count", Value: 3},
	))
	asText := cidgen.Text(`{"key":"value","count":3}`)

	gotRecord, err := cidgen.Sum(record)
	require.NoError(t, err)
	gotText, err := cidgen.Sum(asText)
	require.NoError(t, err)
	require.Equal(t, gotText, gotRecord)
}

func TestRecord_FieldOrderChangesCid(t *testing.T) {
	ab := mustValueOf(t, cidgen.NewRecord(
		cidgen.Field{Name: "a", Value: "1"},
		cidgen.Field{Name: "b", Value: "2"},
	))
	ba := mustValueOf(t, cidgen.NewRecord(
		cidgen.Field{Name: "b", Value: "2"},
		cidgen.Field{Name: "a", Value: "1"},
	))

	gotAb, err := cidgen.Sum(ab)
	require.NoError(t, err)
	gotBa, err := cidgen.Sum(ba)
	require.NoError(t, err)
	require.NotEqual(t, gotAb, gotBa)
}

func TestRecord_EncodingLevelDeterminism(t *testing.T) {
	// Field values of different Go types that serialize to identical bytes
	// must produce identical CIDs.
	asString := mustValueOf(t, cidgen.NewRecord(cidgen.Field{Name: "key", Value: "value"}))
	asRawMessage := mustValueOf(t, cidgen.NewRecord(cidgen.Field{Name: "key", Value: json.RawMessage(`"value"`)}))

	gotString, err := cidgen.Sum(asString)
	require.NoError(t, err)
	gotRawMessage, err := cidgen.Sum(asRawMessage)
	require.NoError(t, err)
	require.Equal(t, gotString, gotRawMessage)
}

func TestValueOf_MapFieldsSortedByKey(t *testing.T) {
	fromMap := mustValueOf(t, map[string]string{"b": "2", "a": "1"})
	fromRecord := mustValueOf(t, cidgen.NewRecord(
		cidgen.Field{Name: "a", Value: "1"},
		cidgen.Field{Name: "b", Value: "2"},
	))

	gotMap, err := cidgen.Sum(fromMap)
	require.NoError(t, err)
	gotRecord, err := cidgen.Sum(fromRecord)
	require.NoError(t, err)
	require.Equal(t, gotRecord, gotMap)
}

func TestRecord_UnserializableFieldIsEncodingFailure(t *testing.T) {
	record := mustValueOf(t, cidgen.NewRecord(cidgen.Field{Name: "ch", Value: make(chan int)}))
	_, err := cidgen.Sum(record)
	require.Error(t, err)
	require.IsType(t, cidgen.ErrEncodingFailure{}, err)
}
