package entity

import "time"

// Estados de recepciones y entregas.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidDocumentStatus indica si s es un estado de documento admitido.
func ValidDocumentStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusCancelled
}

// Reception entrada de insumos desde un proveedor (numeración REC-NNNNNN).
type Reception struct {
	ID            string
	Number        string
	Date          time.Time
	PurchaseOrder string
	Invoice       string
	SupplierID    string
	ClientID      *string
	DeliveredBy   string
	ReceivedBy    string
	ActorID       string
	Status        string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relaciones cargadas bajo demanda (ver ReceptionInclude).
	Supplier *Supplier
	Client   *Client
	Actor    *User
	Details  []*ReceptionDetail
}

// ReceptionDetail renglón de una recepción; cada uno produce un movimiento de entrada.
type ReceptionDetail struct {
	ID              string
	ReceptionID     string
	InventoryLineID string
	Amount          int
	Unit            string
	Notes           string

	Line *InventoryLine
}

// ReceptionFilter filtros del listado de recepciones.
type ReceptionFilter struct {
	From       *time.Time
	To         *time.Time
	ClientID   string
	SupplierID string
	Status     string
	Limit      int
	Offset     int
}
