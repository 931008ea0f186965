package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Dated carries every field a backend may use to date a record.
type Dated struct {
	IssueDate       Flex `json:"issue_date"`
	PaymentDate     Flex `json:"payment_date"`
	TransactionDate Flex `json:"transaction_date"`
	Date            Flex `json:"date"`
	CreatedAt       Flex `json:"created_at"`
	UpdatedAt       Flex `json:"updated_at"`
	Year            Flex `json:"year"`
	Month           Flex `json:"month"`
	Time            Flex `json:"time"`
}

// Base holds the fields shared by every source record.
type Base struct {
	Dated
	ID       Flex `json:"id"`
	Receiver Flex `json:"receiver"`
}

func (b *Base) Record() *Base {
	return b
}

type Expenditure struct {
	Base
	Amount      Flex `json:"amount"`
	Category    Flex `json:"category"`
	Description Flex `json:"description"`
}

type MiscIncome struct {
	Base
	Amount      Flex `json:"amount"`
	Source      Flex `json:"source"`
	Description Flex `json:"description"`
}

// CustomerShare is one counterparty's part of a rent, service or salary record.
type CustomerShare struct {
	Taken     Flex `json:"taken"`
	Remainder Flex `json:"remainder"`
	Name      Flex `json:"name"`
}

// Charge is the shape shared by the rent and service-fee sources.
type Charge struct {
	Base
	Floor          Flex                      `json:"floor"`
	CustomersList  OrderedMap[CustomerShare] `json:"customers_list"`
	TotalTaken     Flex                      `json:"total_taken"`
	TotalRemainder Flex                      `json:"total_remainder"`
}

type Salary struct {
	Base
	Staff          StaffRef                  `json:"staff"`
	CustomersList  OrderedMap[CustomerShare] `json:"customers_list"`
	TotalTaken     Flex                      `json:"total_taken"`
	TotalRemainder Flex                      `json:"total_remainder"`
}

type Customer struct {
	Base
	FullName string `json:"full_name"`
	Name     string `json:"name"`
}

type Agreement struct {
	Base
	Status string `json:"status"`
	Shop   IDList `json:"shop"`
}

// UnitShare is one unit's line on a unit bill.
type UnitShare struct {
	UnitID       Flex `json:"unit_id"`
	UnitNumber   Flex `json:"unit_number"`
	CustomerName Flex `json:"customer_name"`
	Taken        Flex `json:"taken"`
	Remainder    Flex `json:"remainder"`
}

type UnitBill struct {
	Base
	UnitDetails    OrderedMap[UnitShare]     `json:"unit_details_list"`
	CustomersList  OrderedMap[CustomerShare] `json:"customers_list"`
	TotalRemainder Flex                      `json:"total_remainder"`
}

// UnitAdjustment is a balance correction (discount) granted to a unit.
type UnitAdjustment struct {
	Base
	Amount      Flex `json:"amount"`
	Description Flex `json:"description"`
}

// Outstanding is implemented by records that track an unpaid balance.
type Outstanding interface {
	OutstandingTotal() Flex
	OutstandingShares() OrderedMap[CustomerShare]
}

func (c Charge) OutstandingTotal() Flex                       { return c.TotalRemainder }
func (c Charge) OutstandingShares() OrderedMap[CustomerShare] { return c.CustomersList }

func (s Salary) OutstandingTotal() Flex                       { return s.TotalRemainder }
func (s Salary) OutstandingShares() OrderedMap[CustomerShare] { return s.CustomersList }

func (u UnitBill) OutstandingTotal() Flex                       { return u.TotalRemainder }
func (u UnitBill) OutstandingShares() OrderedMap[CustomerShare] { return u.CustomersList }

// StaffRef is the salary "staff" field: either an embedded {id, name} object or a bare id/name.
type StaffRef struct {
	ID       string
	Name     string
	Embedded bool
}

func (s *StaffRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*s = StaffRef{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	switch b[0] {
	case '{':
		var obj struct {
			ID   Flex `json:"id"`
			Name Flex `json:"name"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return fmt.Errorf("store: staff: %w", err)
		}
		*s = StaffRef{ID: obj.ID.String(), Name: obj.Name.String(), Embedded: true}
	case '"':
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return fmt.Errorf("store: staff: %w", err)
		}
		*s = StaffRef{ID: name, Name: name}
	default:
		var f Flex
		if err := f.UnmarshalJSON(b); err != nil {
			return err
		}
		s.ID = f.String()
	}
	return nil
}

// IDList accepts either a single id or an array of ids.
type IDList []Flex

func (l *IDList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*l = nil
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '[' {
		var items []Flex
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("store: id list: %w", err)
		}
		*l = items
		return nil
	}
	var f Flex
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	*l = IDList{f}
	return nil
}
