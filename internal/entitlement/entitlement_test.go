package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanGenerate_UnpaidFollowsCounter(t *testing.T) {
	for limit := 0; limit <= 4; limit++ {
		for used := 0; used <= 5; used++ {
			u := &User{FreeWorksheetsUsed: used, MaxFreeWorksheets: limit}
			assert.Equal(t, used < limit, CanGenerate(u), "used=%d max=%d", used, limit)
		}
	}
}

func TestCanGenerate_PaidIgnoresCounter(t *testing.T) {
	u := &User{IsPaid: true, FreeWorksheetsUsed: 10, MaxFreeWorksheets: 1}
	assert.True(t, CanGenerate(u))
}

func TestCanGenerate_ZeroAllowance(t *testing.T) {
	u := NewUser("u1", "kid@example.com", 0)
	assert.False(t, CanGenerate(u))
}

func TestCanGenerate_NilUser(t *testing.T) {
	assert.False(t, CanGenerate(nil))
}

func TestRecordGeneration_UnpaidIncrementsByOne(t *testing.T) {
	u := NewUser("u1", "kid@example.com", 3)
	RecordGeneration(u)
	assert.Equal(t, 1, u.FreeWorksheetsUsed)
	RecordGeneration(u)
	assert.Equal(t, 2, u.FreeWorksheetsUsed)
}

func TestRecordGeneration_PaidUnchanged(t *testing.T) {
	u := &User{IsPaid: true, FreeWorksheetsUsed: 2, MaxFreeWorksheets: 3}
	RecordGeneration(u)
	assert.Equal(t, 2, u.FreeWorksheetsUsed)
}

func TestUpgrade(t *testing.T) {
	u := NewUser("u1", "kid@example.com", 1)
	u.FreeWorksheetsUsed = 1
	assert.False(t, CanGenerate(u))

	Upgrade(u)
	assert.True(t, u.IsPaid)
	assert.True(t, CanGenerate(u))
}

func TestNewUser_Defaults(t *testing.T) {
	u := NewUser("u1", "kid@example.com", -2)
	assert.False(t, u.IsPaid)
	assert.Equal(t, 0, u.FreeWorksheetsUsed)
	assert.Equal(t, 0, u.MaxFreeWorksheets)
}

func TestRemainingAndLabel(t *testing.T) {
	u := NewUser("u1", "kid@example.com", 3)
	u.FreeWorksheetsUsed = 1
	assert.Equal(t, 2, Remaining(u))
	assert.Equal(t, "1/3 free sheets used", UsageLabel(u))

	u.FreeWorksheetsUsed = 5
	assert.Equal(t, 0, Remaining(u))

	Upgrade(u)
	assert.Equal(t, -1, Remaining(u))
	assert.Equal(t, "", UsageLabel(u))
}
