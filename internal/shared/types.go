package shared

// Asynq task types, grouped by owning domain.
const (
	TypeSendOrderConfirmation    = "order:send_confirmation"
	TypeSendShipmentNotice       = "order:send_shipment_notice"
	TypeDeactivateExpiredCoupons = "coupon:deactivate_expired"
	TypePurgeActivityLog         = "analytics:purge_old_events"
)

// Asynq queues.
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// Regions supported by the storefront. TR prices in TRY, everything else
// in USD.
const (
	RegionTR     = "TR"
	RegionGlobal = "GLOBAL"
)

// CurrencyForRegion maps a region to its billing currency.
func CurrencyForRegion(region string) string {
	if region == RegionTR {
		return "TRY"
	}
	return "USD"
}
