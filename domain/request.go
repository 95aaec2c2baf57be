package domain

// Request is an order placed by a pharmacy. It is exposed over HTTP as an
// "order". Dates are YYYYMMDD strings.
type Request struct {
	ID              int64   `db:"id" json:"id"`
	Date            string  `db:"date" json:"date"`
	PharmacyID      int64   `db:"pharmacy_id" json:"pharmacy_id"`
	FulfillmentDate *string `db:"fulfillment_date" json:"fulfillment_date"`
}

type RequestCreate struct {
	Date            string
	PharmacyID      int64
	FulfillmentDate *string
}
