package repository

// Repos agrupa los puertos de persistencia. El mismo conjunto se construye sobre el pool
// (lecturas) o sobre una transacción (TxRunner), de modo que los casos de uso escriben
// contra una sola forma.
type Repos struct {
	Lines         InventoryLineRepository
	Movements     MovementRepository
	Alerts        AlertRepository
	Sequences     SequenceRepository
	Receptions    ReceptionRepository
	Deliveries    DeliveryRepository
	Clients       ClientRepository
	ClientConfigs ClientConfigRepository
	Brands        BrandRepository
	Suppliers     SupplierRepository
	Varieties     VarietyRepository
	Presentations PresentationRepository
	Categories    CategoryRepository
	Lots          ProductionLotRepository
	Users         UserRepository
}
