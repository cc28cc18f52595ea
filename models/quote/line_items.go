package quote

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// LineItem is one inclusion or exclusion of a quote. Price is in cents and
// nil when the item is not priced separately.
type LineItem struct {
	Item  string `json:"item"`
	Price *int64 `json:"price"`
}

// LineItems is stored as a JSON array and validated on the way in and out.
type LineItems []LineItem

// Validate checks every item has a label and no negative price
func (li LineItems) Validate() error {
	for i, item := range li {
		if strings.TrimSpace(item.Item) == "" {
			return fmt.Errorf("line item %d: item is required", i+1)
		}
		if item.Price != nil && *item.Price < 0 {
			return fmt.Errorf("line item %d: price must not be negative", i+1)
		}
	}
	return nil
}

// Scan implements the Scanner interface for database deserialization
func (li *LineItems) Scan(value interface{}) error {
	if value == nil {
		*li = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	var items LineItems
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("invalid line items: %w", err)
	}
	if err := items.Validate(); err != nil {
		return err
	}
	*li = items
	return nil
}

// Value implements the driver Valuer interface for database serialization
func (li LineItems) Value() (driver.Value, error) {
	if li == nil {
		return nil, nil
	}
	if err := li.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(li)
}

// IntSlice stores small integer lists such as child ages as JSON.
type IntSlice []int

// Scan implements the Scanner interface for database deserialization
func (is *IntSlice) Scan(value interface{}) error {
	if value == nil {
		*is = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(data, is)
}

// Value implements the driver Valuer interface for database serialization
func (is IntSlice) Value() (driver.Value, error) {
	if is == nil {
		return nil, nil
	}
	return json.Marshal(is)
}
