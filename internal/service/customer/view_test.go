// internal/service/customer/view_test.go
package customer

import (
	"testing"

	"crm-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
)

func TestPartitionViewAppliesMatchingLoad(t *testing.T) {
	v := NewPartitionView("customers_public")

	applied := v.Apply("customers_public", []customer.Customer{{ID: "1"}})
	assert.True(t, applied)
	assert.Len(t, v.Records(), 1)
}

func TestPartitionViewDiscardsStaleLoad(t *testing.T) {
	v := NewPartitionView("customers_public")

	// A load is issued for the public partition, then the session signs in
	// and the view switches before the response arrives.
	v.SetPartition("customers_alice")

	applied := v.Apply("customers_public", []customer.Customer{{ID: "stale"}})
	assert.False(t, applied)
	assert.Empty(t, v.Records())

	// The load for the new partition still lands.
	applied = v.Apply("customers_alice", []customer.Customer{{ID: "fresh"}})
	assert.True(t, applied)
	assert.Equal(t, "fresh", v.Records()[0].ID)
}

func TestPartitionViewSwitchClearsRecords(t *testing.T) {
	v := NewPartitionView("a")
	v.Apply("a", []customer.Customer{{ID: "1"}})

	v.SetPartition("b")
	assert.Empty(t, v.Records())
	assert.Equal(t, "b", v.Partition())

	// Re-setting the same partition keeps the snapshot.
	v.Apply("b", []customer.Customer{{ID: "2"}})
	v.SetPartition("b")
	assert.Len(t, v.Records(), 1)
}
