package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/dbforge/internal/util/ptr"
)

// validResolved returns a configuration that passes every check.
func validResolved(t *testing.T, overrides Values) *Resolved {
	t.Helper()
	if overrides.Credentials.Password == "" && overrides.Credentials.ExistingSecret == "" {
		overrides.Credentials.Password = "s3cret"
	}
	res, err := Resolve(Defaults(), overrides)
	require.NoError(t, err)
	return res
}

func TestValidate_ValidConfig(t *testing.T) {
	res := validResolved(t, Values{})
	assert.Empty(t, res.Validate())
}

func TestValidate_MissingPassword(t *testing.T) {
	res, err := Resolve(Defaults(), Values{})
	require.NoError(t, err)

	errs := res.Validate()
	require.NotEmpty(t, errs)
	assert.True(t, errs.Has(CodeMissingPassword))
}

func TestValidate_ExternalSecretSatisfiesCredentialCheck(t *testing.T) {
	res, err := Resolve(Defaults(), Values{
		Credentials: CredentialValues{ExistingSecret: "prod-db-creds"},
	})
	require.NoError(t, err)

	assert.False(t, res.Validate().Has(CodeMissingPassword))
}

func TestValidate_StatefulNeedsAtLeastOneReplica(t *testing.T) {
	res := validResolved(t, Values{ReplicaCount: ptr.Int32(0)})

	errs := res.Validate()
	assert.True(t, errs.Has(CodeInvalidReplicaRange))
}

func TestValidate_StatelessAllowsZeroReplicas(t *testing.T) {
	res := validResolved(t, Values{
		Stateful:     ptr.Bool(false),
		ReplicaCount: ptr.Int32(0),
	})

	assert.False(t, res.Validate().Has(CodeInvalidReplicaRange))
}

func TestValidate_AutoscalingRange(t *testing.T) {
	tests := []struct {
		name    string
		min     int32
		max     int32
		cpu     int32
		wantErr bool
	}{
		{"valid range", 1, 5, 80, false},
		{"min exceeds max", 5, 2, 80, true},
		{"zero min", 0, 3, 80, true},
		{"zero max", 1, 0, 80, true},
		{"utilization over 100", 1, 3, 150, true},
		{"zero utilization", 1, 3, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validResolved(t, Values{
				Autoscaling: AutoscalingValues{
					Enabled:              ptr.Bool(true),
					MinReplicas:          ptr.Int32(tt.min),
					MaxReplicas:          ptr.Int32(tt.max),
					TargetCPUUtilization: ptr.Int32(tt.cpu),
				},
			})
			got := res.Validate().Has(CodeInvalidAutoscalingRange)
			assert.Equal(t, tt.wantErr, got)
		})
	}
}

func TestValidate_AutoscalingDisabledIgnoresRange(t *testing.T) {
	// A nonsensical range is fine as long as autoscaling stays off.
	res := validResolved(t, Values{
		Autoscaling: AutoscalingValues{
			Enabled:     ptr.Bool(false),
			MinReplicas: ptr.Int32(10),
			MaxReplicas: ptr.Int32(2),
		},
	})

	assert.Empty(t, res.Validate())
}

func TestValidate_PersistenceWithoutClaims(t *testing.T) {
	res := validResolved(t, Values{})
	res.Persistence.Claims = nil

	errs := res.Validate()
	assert.True(t, errs.Has(CodePersistenceWithoutClaims))
}

func TestValidate_ClaimSize(t *testing.T) {
	res := validResolved(t, Values{
		Persistence: PersistenceValues{
			Claims: []ClaimValues{{Name: "data", Size: "ten gigs"}},
		},
	})

	assert.True(t, res.Validate().Has(CodeInvalidQuantity))
}

func TestValidate_ResourceQuantities(t *testing.T) {
	res := validResolved(t, Values{
		Resources: ResourceValues{
			Requests: ResourceList{CPU: "lots"},
		},
	})

	assert.True(t, res.Validate().Has(CodeInvalidQuantity))
}

func TestValidate_BackupSchedule(t *testing.T) {
	res := validResolved(t, Values{
		Backup: BackupValues{Enabled: ptr.Bool(true)},
	})
	res.Backup.Schedule = ""

	assert.True(t, res.Validate().Has(CodeEmptySchedule))
}

func TestValidate_JobSchedules(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		want     ValidationCode
	}{
		{"valid", "*/15 * * * *", ""},
		{"empty", "", CodeEmptySchedule},
		{"malformed", "every day at noon", CodeInvalidSchedule},
		{"too many fields", "0 0 * * * *", CodeInvalidSchedule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validResolved(t, Values{
				Jobs: []JobValues{{Name: "vacuum", Schedule: tt.schedule}},
			})
			errs := res.Validate()
			if tt.want == "" {
				assert.Empty(t, errs)
				return
			}
			assert.True(t, errs.Has(tt.want))
		})
	}
}

func TestValidate_JobNameRequired(t *testing.T) {
	res := validResolved(t, Values{
		Jobs: []JobValues{{Schedule: "0 3 * * *"}},
	})

	assert.True(t, res.Validate().Has(CodeEmptyName))
}

func TestValidate_JobNameShape(t *testing.T) {
	tests := []struct {
		name    string
		jobName string
		wantErr bool
	}{
		{"valid", "daily-export", false},
		{"uppercase", "My_Job", true},
		{"underscore", "daily_export", true},
		{"too long", strings.Repeat("a", 23), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validResolved(t, Values{
				Jobs: []JobValues{{Name: tt.jobName, Schedule: "0 3 * * *"}},
			})
			got := res.Validate().Has(CodeInvalidJobName)
			assert.Equal(t, tt.wantErr, got)
		})
	}
}

func TestValidate_DuplicateJobNames(t *testing.T) {
	res := validResolved(t, Values{
		Jobs: []JobValues{
			{Name: "export", Schedule: "0 1 * * *"},
			{Name: "vacuum", Schedule: "0 2 * * *"},
			{Name: "export", Schedule: "0 3 * * *"},
		},
	})

	errs := res.Validate()
	require.True(t, errs.Has(CodeDuplicateName))
	assert.Contains(t, errs.Error(), `"export"`)
	assert.Contains(t, errs.Error(), "jobs[2]")
}

func TestValidate_MemoryUtilizationRange(t *testing.T) {
	tests := []struct {
		name    string
		memory  int32
		wantErr bool
	}{
		{"unset", 0, false},
		{"valid", 70, false},
		{"over 100", 150, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validResolved(t, Values{
				Autoscaling: AutoscalingValues{
					Enabled:                 ptr.Bool(true),
					MinReplicas:             ptr.Int32(1),
					MaxReplicas:             ptr.Int32(3),
					TargetCPUUtilization:    ptr.Int32(80),
					TargetMemoryUtilization: ptr.Int32(tt.memory),
				},
			})
			got := res.Validate().Has(CodeInvalidAutoscalingRange)
			assert.Equal(t, tt.wantErr, got)
		})
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	res, err := Resolve(Defaults(), Values{
		ReplicaCount: ptr.Int32(0),
		Autoscaling: AutoscalingValues{
			Enabled:     ptr.Bool(true),
			MinReplicas: ptr.Int32(5),
			MaxReplicas: ptr.Int32(2),
		},
		Jobs: []JobValues{{Name: "vacuum", Schedule: ""}},
	})
	require.NoError(t, err)

	errs := res.Validate()
	// One pass reports every violation together, not just the first.
	assert.True(t, errs.Has(CodeMissingPassword))
	assert.True(t, errs.Has(CodeInvalidReplicaRange))
	assert.True(t, errs.Has(CodeInvalidAutoscalingRange))
	assert.True(t, errs.Has(CodeEmptySchedule))
	assert.GreaterOrEqual(t, len(errs), 4)

	msg := errs.Error()
	assert.Contains(t, msg, "MissingPassword")
	assert.Contains(t, msg, "EmptySchedule")
}
