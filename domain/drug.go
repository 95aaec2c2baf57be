package domain

type Drug struct {
	ID           int64  `db:"id" json:"id"`
	Code         string `db:"code" json:"code"`
	Name         string `db:"name" json:"name"`
	Manufacturer string `db:"manufacturer" json:"manufacturer"`
	Price        int64  `db:"price" json:"price"`
}

// DrugCreate carries every client-supplied drug field. An update writes all of
// them, there is no partial form.
type DrugCreate struct {
	Code         string
	Name         string
	Manufacturer string
	Price        int64
}
