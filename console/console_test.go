package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sdms-server/alerts"
	"sdms-server/data"
	"sdms-server/refdata"
)

// fixture bundles the collaborators every controller test needs: an isolated
// in-memory store, the bundled catalog and its own alert channel.
type fixture struct {
	store   *data.MemoryStore
	catalog *refdata.Catalog
	alerts  *alerts.Channel
	log     *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := refdata.Load()
	require.NoError(t, err)

	ch := alerts.NewChannel(time.Minute, zap.NewNop())
	t.Cleanup(ch.Close)

	return &fixture{
		store:   data.NewMemoryStore(),
		catalog: catalog,
		alerts:  ch,
		log:     zap.NewNop(),
	}
}

func (f *fixture) lastAlert(t *testing.T) alerts.Alert {
	t.Helper()
	items := f.alerts.List()
	require.NotEmpty(t, items)
	return items[len(items)-1]
}

func (f *fixture) alertCount() int {
	return len(f.alerts.List())
}
