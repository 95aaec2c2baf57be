package domain

// Purchase is a line item of a Request, exposed over HTTP as a "supply".
type Purchase struct {
	ID        int64 `db:"id" json:"id"`
	RequestID int64 `db:"request_id" json:"request_id"`
	DrugID    int64 `db:"drug_id" json:"drug_id"`
	Quantity  int64 `db:"quantity" json:"quantity"`
}

type PurchaseCreate struct {
	RequestID int64
	DrugID    int64
	Quantity  int64
}
