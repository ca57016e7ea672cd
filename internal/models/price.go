package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// VolumeBased is the sentinel price value meaning "determined per case".
const VolumeBased = "volumeBased"

var ErrInvalidPrice = errors.New("price must be a positive number or \"volumeBased\"")

// Price is either a positive amount or the volume-based sentinel. It
// marshals to JSON as a number or the literal string "volumeBased" and is
// stored in the database as text.
type Price struct {
	Amount      float64
	VolumeBased bool
}

// ParsePrice validates a raw form value against the price rules.
func ParsePrice(raw string) (Price, error) {
	if raw == VolumeBased {
		return Price{VolumeBased: true}, nil
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		return Price{}, ErrInvalidPrice
	}
	return Price{Amount: amount}, nil
}

func (p Price) String() string {
	if p.VolumeBased {
		return VolumeBased
	}
	return strconv.FormatFloat(p.Amount, 'f', -1, 64)
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.VolumeBased {
		return json.Marshal(VolumeBased)
	}
	return json.Marshal(p.Amount)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != VolumeBased {
			return ErrInvalidPrice
		}
		*p = Price{VolumeBased: true}
		return nil
	}

	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return ErrInvalidPrice
	}
	if amount <= 0 {
		return ErrInvalidPrice
	}
	*p = Price{Amount: amount}
	return nil
}

func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

func (p *Price) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParsePrice(v)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case []byte:
		return p.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Price", src)
	}
}
