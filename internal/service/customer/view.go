// internal/service/customer/view.go
package customer

import (
	"sync"

	"crm-service/internal/domain/customer"
)

// PartitionView is the in-memory record set of one session. Loads are
// asynchronous, and a session can switch identity (and therefore
// partition) while a load is in flight; Apply tags every result with the
// partition it was fetched for and drops results whose tag no longer
// matches, so a late response for the old partition can never overwrite
// state belonging to the new one.
type PartitionView struct {
	mu        sync.Mutex
	partition string
	records   []customer.Customer
}

func NewPartitionView(partition string) *PartitionView {
	return &PartitionView{partition: partition}
}

// Partition returns the partition the view currently tracks.
func (v *PartitionView) Partition() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.partition
}

// SetPartition switches the view to a new partition and clears the record
// set. Any in-flight load issued for the previous partition becomes stale.
func (v *PartitionView) SetPartition(partition string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.partition == partition {
		return
	}
	v.partition = partition
	v.records = nil
}

// Apply installs a fetched record set if it was loaded for the current
// partition. Stale results are discarded silently; the return value only
// tells the caller whether the snapshot was taken.
func (v *PartitionView) Apply(partition string, records []customer.Customer) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if partition != v.partition {
		return false
	}
	v.records = records
	return true
}

// Records returns the current snapshot.
func (v *PartitionView) Records() []customer.Customer {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]customer.Customer, len(v.records))
	copy(out, v.records)
	return out
}
