package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRecordIDFormat(t *testing.T) {
	for _, prefix := range []string{"CIF", "ACC", "PRD", "SUB", "OFF", "TRN"} {
		assert.Regexp(t, "^"+prefix+`-[0-9A-Z]{6}$`, NewRecordID(prefix))
	}
}

func TestDisplayName(t *testing.T) {
	individual := Customer{CustType: CustTypeIndividual, FirstName: "Jane", LastName: "Smith"}
	assert.Equal(t, "Jane Smith", individual.DisplayName())

	corporate := Customer{CustType: CustTypeCorporate, TradeName: "Acme Traders Ltd"}
	assert.Equal(t, "Acme Traders Ltd", corporate.DisplayName())
}

func TestTimestampsUseMillisecondPrecisionUTC(t *testing.T) {
	stamp, err := time.Parse("2006-01-02T15:04:05.000Z", NowISO())
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), stamp, time.Minute)

	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, Today())
}
