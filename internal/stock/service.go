package stock

import (
	"fmt"
	"sort"
	"time"
)

// priorityWindowDays is how far ahead an expiry date still counts as urgent.
const priorityWindowDays = 3

// IDGenerator generates unique IDs for items
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates IDs using UnixNano timestamp
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles pantry operations
type Service struct {
	db          DB
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB) *Service {
	return &Service{
		db:          db,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// ItemInput carries the user-editable fields of an item.
type ItemInput struct {
	Barcode    string `json:"barcode"`
	Name       string `json:"name"`
	Brand      string `json:"brand"`
	ImageURL   string `json:"image_url"`
	Category   string `json:"category"`
	Quantity   string `json:"quantity"`
	ExpiryDate string `json:"expiry_date"`
	Notes      string `json:"notes"`
}

func validateExpiryDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid expiry date %q: expected YYYY-MM-DD", date)
	}
	return nil
}

// AddItem creates a new active item in the pantry
func (s *Service) AddItem(input ItemInput) (*Item, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("item name is required")
	}
	if err := validateExpiryDate(input.ExpiryDate); err != nil {
		return nil, err
	}

	now := s.timeSource.Now()
	item := &Item{
		ID:         s.idGenerator.Generate(),
		Barcode:    input.Barcode,
		Name:       input.Name,
		Brand:      input.Brand,
		ImageURL:   input.ImageURL,
		Category:   input.Category,
		Quantity:   input.Quantity,
		ExpiryDate: input.ExpiryDate,
		Notes:      input.Notes,
		Status:     StatusActive,
		AddedAt:    now,
		UpdatedAt:  now,
	}

	if err := s.db.SaveItem(item); err != nil {
		return nil, fmt.Errorf("saving item to database: %w", err)
	}
	return item, nil
}

// GetItem retrieves an item by ID
func (s *Service) GetItem(id string) (*Item, error) {
	item, err := s.db.GetItem(id)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns items with the given status, newest first. An empty
// status returns everything.
func (s *Service) ListItems(status string) ([]*Item, error) {
	all, err := s.db.ListItems()
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	items := make([]*Item, 0, len(all))
	for _, item := range all {
		if status == "" || item.Status == status {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})
	return items, nil
}

// UpdateItem replaces the user-editable fields of an active item
func (s *Service) UpdateItem(id string, input ItemInput) (*Item, error) {
	item, err := s.db.GetItem(id)
	if err != nil {
		return nil, fmt.Errorf("getting item for update: %w", err)
	}
	if item.Status != StatusActive {
		return nil, fmt.Errorf("item %s is %s and can no longer be edited", id, item.Status)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("item name is required")
	}
	if err := validateExpiryDate(input.ExpiryDate); err != nil {
		return nil, err
	}

	item.Barcode = input.Barcode
	item.Name = input.Name
	item.Brand = input.Brand
	item.ImageURL = input.ImageURL
	item.Category = input.Category
	item.Quantity = input.Quantity
	item.ExpiryDate = input.ExpiryDate
	item.Notes = input.Notes
	item.UpdatedAt = s.timeSource.Now()

	if err := s.db.SaveItem(item); err != nil {
		return nil, fmt.Errorf("saving item to database: %w", err)
	}
	return item, nil
}

// ConsumeItem marks an active item as consumed
func (s *Service) ConsumeItem(id string) (*Item, error) {
	return s.transition(id, StatusConsumed)
}

// ThrowItem marks an active item as thrown away
func (s *Service) ThrowItem(id string) (*Item, error) {
	return s.transition(id, StatusThrown)
}

func (s *Service) transition(id, status string) (*Item, error) {
	item, err := s.db.GetItem(id)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	if item.Status != StatusActive {
		return nil, fmt.Errorf("item %s is already %s", id, item.Status)
	}

	now := s.timeSource.Now()
	item.Status = status
	item.UpdatedAt = now
	switch status {
	case StatusConsumed:
		item.ConsumedAt = &now
	case StatusThrown:
		item.ThrownAt = &now
	}

	if err := s.db.SaveItem(item); err != nil {
		return nil, fmt.Errorf("saving item to database: %w", err)
	}
	return item, nil
}

// daysUntil returns the number of whole days from now until the expiry date,
// negative if the date has passed. The second return is false when the item
// has no parseable expiry date.
func daysUntil(item *Item, now time.Time) (int, bool) {
	if item.ExpiryDate == "" {
		return 0, false
	}
	expiry, err := time.Parse("2006-01-02", item.ExpiryDate)
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(expiry.Sub(today).Hours() / 24), true
}

// PriorityItems returns the active items expiring within the next few days
// (expired ones included), most urgent first.
func (s *Service) PriorityItems() ([]*Item, error) {
	active, err := s.ListItems(StatusActive)
	if err != nil {
		return nil, err
	}

	now := s.timeSource.Now()
	priority := make([]*Item, 0)
	for _, item := range active {
		if days, ok := daysUntil(item, now); ok && days <= priorityWindowDays {
			priority = append(priority, item)
		}
	}
	sort.Slice(priority, func(i, j int) bool {
		return priority[i].ExpiryDate < priority[j].ExpiryDate
	})
	return priority, nil
}

// Stats computes the dashboard summary
func (s *Service) Stats() (*Stats, error) {
	all, err := s.db.ListItems()
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	now := s.timeSource.Now()
	weekAgo := now.AddDate(0, 0, -7)
	stats := &Stats{}
	for _, item := range all {
		switch item.Status {
		case StatusActive:
			stats.TotalItems++
			if days, ok := daysUntil(item, now); ok {
				if days < 0 {
					stats.Expired++
				} else if days <= priorityWindowDays {
					stats.ExpiringSoon++
				}
			}
		case StatusConsumed:
			if item.ConsumedAt != nil && item.ConsumedAt.After(weekAgo) {
				stats.ConsumedThisWeek++
			}
		case StatusThrown:
			if item.ThrownAt != nil && item.ThrownAt.After(weekAgo) {
				stats.ThrownThisWeek++
			}
		}
	}
	return stats, nil
}
