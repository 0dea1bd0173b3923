package entity

// Vendor es el proveedor al que se emiten órdenes de compra.
type Vendor struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	IsActive      bool
}
