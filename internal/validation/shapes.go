package validation

import "pharmstore/m/domain"

// Payload shapes decoded from request bodies. Pointer fields let "required"
// tell a missing key apart from a zero value.

type DrugPayload struct {
	Code         *string `json:"code" validate:"required,min=1,max=50"`
	Name         *string `json:"name" validate:"required,max=50"`
	Manufacturer *string `json:"manufacturer" validate:"required,max=50"`
	Price        *int64  `json:"price" validate:"required,min=0"`
}

// Create copies a validated payload field by field.
func (p DrugPayload) Create() domain.DrugCreate {
	return domain.DrugCreate{
		Code:         *p.Code,
		Name:         *p.Name,
		Manufacturer: *p.Manufacturer,
		Price:        *p.Price,
	}
}

type PharmacyPayload struct {
	Number      *int64  `json:"number" validate:"required"`
	Name        *string `json:"name" validate:"required,max=50"`
	Address     *string `json:"address" validate:"required,max=50"`
	PhoneNumber *string `json:"phone_number" validate:"required,max=10"`
}

func (p PharmacyPayload) Create() domain.PharmacyCreate {
	return domain.PharmacyCreate{
		Number:      *p.Number,
		Name:        *p.Name,
		Address:     *p.Address,
		PhoneNumber: *p.PhoneNumber,
	}
}

type RequestPayload struct {
	Date            *string `json:"date" validate:"required,yyyymmdd"`
	PharmacyID      *int64  `json:"pharmacy_id" validate:"required,min=1"`
	FulfillmentDate *string `json:"fulfillment_date" validate:"omitempty,yyyymmdd"`
}

func (p RequestPayload) Create() domain.RequestCreate {
	out := domain.RequestCreate{
		Date:       *p.Date,
		PharmacyID: *p.PharmacyID,
	}
	if p.FulfillmentDate != nil {
		d := *p.FulfillmentDate
		out.FulfillmentDate = &d
	}
	return out
}

type PurchasePayload struct {
	RequestID *int64 `json:"request_id" validate:"required,min=1"`
	DrugID    *int64 `json:"drug_id" validate:"required,min=1"`
	Quantity  *int64 `json:"quantity" validate:"required,min=1"`
}

func (p PurchasePayload) Create() domain.PurchaseCreate {
	return domain.PurchaseCreate{
		RequestID: *p.RequestID,
		DrugID:    *p.DrugID,
		Quantity:  *p.Quantity,
	}
}
