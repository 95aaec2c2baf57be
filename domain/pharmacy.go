package domain

type Pharmacy struct {
	ID          int64  `db:"id" json:"id"`
	Number      int64  `db:"number" json:"number"`
	Name        string `db:"name" json:"name"`
	Address     string `db:"address" json:"address"`
	PhoneNumber string `db:"phone_number" json:"phone_number"`
}

// PharmacyCreate carries every client-supplied pharmacy field.
type PharmacyCreate struct {
	Number      int64
	Name        string
	Address     string
	PhoneNumber string
}
