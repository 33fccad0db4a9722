package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_HeaderKeyedRows(t *testing.T) {
	input := "application_id,application_name,application_owner\n" +
		"F1001,AgroFuture Connect,Jane Mwangi\n" +
		"F1002,Harvest Hub,\n"

	records, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "F1001", records[0].Get("application_id"))
	assert.Equal(t, "AgroFuture Connect", records[0].Get("application_name"))
	assert.Equal(t, "Jane Mwangi", records[0].Get("application_owner"))
	assert.False(t, records[1].Has("application_owner"))
}

func TestParseCSV_DropsRowsWithoutPrimaryName(t *testing.T) {
	input := "application_id,application_name\n" +
		"F1001,AgroFuture Connect\n" +
		"F1002,\n" +
		"F1003,   \n" +
		"F1004,Harvest Hub\n"

	records, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AgroFuture Connect", records[0].Get("application_name"))
	assert.Equal(t, "Harvest Hub", records[1].Get("application_name"))
}

func TestParseCSV_ShortRowTolerated(t *testing.T) {
	input := "application_id,application_name,application_owner\n" +
		"F1001,AgroFuture Connect\n"

	records, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Get("application_owner"))
}

func TestParseCSV_EmptyInput(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseCSV_ValuesAreTrimmed(t *testing.T) {
	input := "application_id, application_name \n" +
		"F1001 ,  AgroFuture Connect  \n"

	records, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AgroFuture Connect", records[0].Get("application_name"))
	assert.Equal(t, "F1001", records[0].Get("application_id"))
}
