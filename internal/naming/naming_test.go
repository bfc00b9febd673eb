package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_Deterministic(t *testing.T) {
	a := Derive("orders-db")
	b := Derive("orders-db")
	assert.Equal(t, a, b)
}

func TestDerive_DistinctInstancesNeverCollide(t *testing.T) {
	a := Derive("orders-db")
	b := Derive("billing-db")
	assert.NotEqual(t, a.Base, b.Base)
	assert.NotEqual(t, a.Secret, b.Secret)
	assert.NotEqual(t, a.Service, b.Service)
}

func TestDerive_SuffixConvention(t *testing.T) {
	n := Derive("orders-db")

	assert.Equal(t, "orders-db", n.Workload)
	assert.Equal(t, "orders-db", n.Service)
	assert.Equal(t, "orders-db-headless", n.HeadlessService)
	assert.Equal(t, "orders-db-credentials", n.Secret)
	assert.Equal(t, "orders-db-config", n.ConfigMap)
	assert.Equal(t, "orders-db-autoscaler", n.Autoscaler)
	assert.Equal(t, "orders-db-network-policy", n.NetworkPolicy)
	assert.Equal(t, "orders-db-pdb", n.DisruptionBudget)
	assert.Equal(t, "orders-db-backup", n.Job("backup"))
}

func TestValidateInstance(t *testing.T) {
	tests := []struct {
		name     string
		instance string
		wantErr  bool
	}{
		{"simple", "db", false},
		{"with hyphens", "orders-db-eu", false},
		{"with digits", "db2", false},
		{"empty", "", true},
		{"uppercase", "OrdersDB", true},
		{"leading digit", "2db", true},
		{"leading hyphen", "-db", true},
		{"trailing hyphen", "db-", true},
		{"underscore", "orders_db", true},
		{"too long", strings.Repeat("a", 41), true},
		{"max length", strings.Repeat("a", 40), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInstance(tt.instance)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateJobName(t *testing.T) {
	tests := []struct {
		name    string
		job     string
		wantErr bool
	}{
		{"simple", "backup", false},
		{"with hyphens", "daily-export", false},
		{"with digits", "vacuum2", false},
		{"empty", "", true},
		{"uppercase", "My_Job", true},
		{"underscore", "daily_export", true},
		{"leading digit", "2nd-backup", true},
		{"trailing hyphen", "backup-", true},
		{"too long", strings.Repeat("a", 23), true},
		{"max length", strings.Repeat("a", 22), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJobName(tt.job)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJobNameStaysWithinObjectNameLimit(t *testing.T) {
	// The longest allowed instance plus the longest allowed job name must
	// still fit a Kubernetes object name.
	n := Derive(strings.Repeat("a", 40))
	job := n.Job(strings.Repeat("b", 22))
	assert.LessOrEqual(t, len(job), 63)
}

func TestLabels_SupersetOfSelector(t *testing.T) {
	n := Derive("orders-db")

	labels := n.Labels(ComponentDatabase)
	selector := n.SelectorLabels()

	// Every selector key must be present with the same value in the full
	// label set, or selectors would never match their pods.
	for k, v := range selector {
		require.Contains(t, labels, k)
		assert.Equal(t, v, labels[k])
	}

	assert.Equal(t, ComponentDatabase, labels[KeyComponent])
	assert.Equal(t, "orders-db", labels[KeyInstance])
}

func TestLabels_ComponentVaries(t *testing.T) {
	n := Derive("orders-db")

	db := n.Labels(ComponentDatabase)
	backup := n.Labels(ComponentBackup)

	assert.NotEqual(t, db[KeyComponent], backup[KeyComponent])
	// The selector subset stays identical regardless of component.
	assert.Equal(t, db[KeyName], backup[KeyName])
	assert.Equal(t, db[KeyInstance], backup[KeyInstance])
}
