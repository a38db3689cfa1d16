package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/grocer/internal/storage"
)

func TestObserve(t *testing.T) {
	counter := Operations.WithLabelValues("list", "delete", OutcomeNotFound)
	before := testutil.ToFloat64(counter)

	Observe("list", "delete", OutcomeNotFound, time.Now())

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestObserveCascade(t *testing.T) {
	accounts := testutil.ToFloat64(CascadeDeleted.WithLabelValues("account"))
	lists := testutil.ToFloat64(CascadeDeleted.WithLabelValues("list"))
	items := testutil.ToFloat64(CascadeDeleted.WithLabelValues("item"))

	ObserveCascade(storage.Cascade{Accounts: 1, Lists: 2, Items: 5})

	assert.Equal(t, accounts+1, testutil.ToFloat64(CascadeDeleted.WithLabelValues("account")))
	assert.Equal(t, lists+2, testutil.ToFloat64(CascadeDeleted.WithLabelValues("list")))
	assert.Equal(t, items+5, testutil.ToFloat64(CascadeDeleted.WithLabelValues("item")))
}
