// internal/service/customer/customer_service.go
package customer

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/domain/customer"
	"crm-service/internal/domain/docstore"

	"go.uber.org/zap"
)

// Publisher pushes customer change events to connected clients. The
// websocket hub implements it; a nil publisher disables the feed.
type Publisher interface {
	PublishCustomerEvent(event customer.Event)
}

// CustomerService implements the customer operations over one resolved
// partition. Every method takes the partition explicitly; resolution from
// the request identity happens in the middleware, never in here.
type CustomerService struct {
	store     docstore.Store
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewCustomerService(store docstore.Store, publisher Publisher, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Create persists a new customer in the partition. Caller-supplied id and
// timestamps are never trusted: the store assigns the id and both
// timestamps are stamped here. Status is defaulted before persisting so
// the stored document is self-describing.
func (s *CustomerService) Create(ctx context.Context, partition string, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	timestamp := s.now().UnixMilli()

	doc := docFromCreate(req)
	doc["status"] = string(customer.NormalizeStatus(req.Status))
	doc["createdAt"] = timestamp
	doc["updatedAt"] = timestamp

	id, err := s.store.Insert(ctx, partition, doc)
	if err != nil {
		s.logger.Error("failed to create customer",
			zap.String("partition", partition),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info("customer created",
		zap.String("customer_id", id),
		zap.String("partition", partition),
	)

	normalized := customer.Normalize(id, doc)
	s.publish(customer.Event{Action: customer.EventCreated, Partition: partition, ID: id, Record: &normalized})
	return &normalized, nil
}

// List returns every customer in the partition, normalized, in store
// order. Display ordering and filtering are the caller's concern.
func (s *CustomerService) List(ctx context.Context, partition string) ([]customer.Customer, error) {
	docs, err := s.store.ListAll(ctx, partition)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	records := make([]customer.Customer, 0, len(docs))
	for _, d := range docs {
		records = append(records, customer.Normalize(d.ID, d.Data))
	}
	return records, nil
}

// Get returns one normalized customer or xerrors.ErrNotFound.
func (s *CustomerService) Get(ctx context.Context, partition, id string) (*customer.Customer, error) {
	doc, err := s.store.GetOne(ctx, partition, id)
	if err != nil {
		return nil, err
	}

	normalized := customer.Normalize(id, doc)
	return &normalized, nil
}

// Update merges the supplied fields onto the stored document and bumps
// updatedAt. The id is immutable after creation; a caller cannot smuggle a
// new one in because only the whitelisted fields below ever reach the
// store. Status is taken as given, not re-validated.
func (s *CustomerService) Update(ctx context.Context, partition, id string, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	partial := docFromUpdate(req)
	partial["updatedAt"] = s.now().UnixMilli()

	if err := s.store.MergeUpdate(ctx, partition, id, partial); err != nil {
		return nil, err
	}

	s.logger.Info("customer updated",
		zap.String("customer_id", id),
		zap.String("partition", partition),
	)

	updated, err := s.Get(ctx, partition, id)
	if err != nil {
		return nil, err
	}
	s.publish(customer.Event{Action: customer.EventUpdated, Partition: partition, ID: id, Record: updated})
	return updated, nil
}

// Delete removes the customer. Hard delete, idempotent: deleting an id
// that is already gone succeeds.
func (s *CustomerService) Delete(ctx context.Context, partition, id string) error {
	if err := s.store.Delete(ctx, partition, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info("customer deleted",
		zap.String("customer_id", id),
		zap.String("partition", partition),
	)
	s.publish(customer.Event{Action: customer.EventDeleted, Partition: partition, ID: id})
	return nil
}

// Search lists the partition and applies the conjunctive filters.
func (s *CustomerService) Search(ctx context.Context, partition string, filters customer.ListFilters) ([]customer.Customer, error) {
	records, err := s.List(ctx, partition)
	if err != nil {
		return nil, err
	}
	return customer.Filter(records, filters), nil
}

// Stats recomputes the list KPIs over the full partition.
func (s *CustomerService) Stats(ctx context.Context, partition string) (*customer.Stats, error) {
	records, err := s.List(ctx, partition)
	if err != nil {
		return nil, err
	}
	stats := customer.ComputeStats(records, s.now())
	return &stats, nil
}

// Countries returns the country filter options for the partition.
func (s *CustomerService) Countries(ctx context.Context, partition string) ([]string, error) {
	records, err := s.List(ctx, partition)
	if err != nil {
		return nil, err
	}
	return customer.CountryOptions(records), nil
}

func (s *CustomerService) publish(event customer.Event) {
	if s.publisher != nil {
		s.publisher.PublishCustomerEvent(event)
	}
}

// docFromCreate builds the stored document from a create request. Only
// these fields exist on the write path; anything else a caller sends has
// nowhere to go.
func docFromCreate(req *customer.CreateCustomerRequest) map[string]interface{} {
	return map[string]interface{}{
		"type":        string(req.Type),
		"firstName":   req.FirstName,
		"lastName":    req.LastName,
		"companyName": req.CompanyName,
		"street":      req.Street,
		"postalCode":  req.PostalCode,
		"city":        req.City,
		"country":     req.Country,
		"email":       req.Email,
		"phone":       req.Phone,
	}
}

// docFromUpdate builds the merge document from an update request: only
// fields the caller actually supplied are included, so the store-level
// merge leaves everything else untouched.
func docFromUpdate(req *customer.UpdateCustomerRequest) map[string]interface{} {
	partial := make(map[string]interface{})
	if req.Type != nil {
		partial["type"] = string(*req.Type)
	}
	if req.FirstName != nil {
		partial["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		partial["lastName"] = *req.LastName
	}
	if req.CompanyName != nil {
		partial["companyName"] = *req.CompanyName
	}
	if req.Street != nil {
		partial["street"] = *req.Street
	}
	if req.PostalCode != nil {
		partial["postalCode"] = *req.PostalCode
	}
	if req.City != nil {
		partial["city"] = *req.City
	}
	if req.Country != nil {
		partial["country"] = *req.Country
	}
	if req.Email != nil {
		partial["email"] = *req.Email
	}
	if req.Phone != nil {
		partial["phone"] = *req.Phone
	}
	if req.Status != nil {
		partial["status"] = *req.Status
	}
	return partial
}
