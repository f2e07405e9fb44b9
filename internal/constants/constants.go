package constants

// User role constants
const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleRider    = "rider"
	RoleAgency   = "agency"
)

// User account status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusInTransit = "in_transit"
	OrderStatusDelivered = "delivered"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order cancellation actor constants
const (
	CancelActorCustomer = "customer"
	CancelActorVendor   = "vendor"
	CancelActorAdmin    = "admin"
	CancelActorSystem   = "system"
)

// Payment status constants
const (
	PaymentStatusInitiated = "initiated"
	PaymentStatusSuccess   = "success"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment method constants
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

// Delivery method constants
const (
	DeliveryMethodJemoRider  = "jemo_rider"
	DeliveryMethodVendorSelf = "vendor_self"
)

// Delivery fee type constants
const (
	FeeTypeJemoRider = "jemo_rider"
	FeeTypeFree      = "free"
	FeeTypeFlat      = "flat"
	FeeTypeSameCity  = "same_city"
	FeeTypeOtherCity = "other_city"
)

// Delivery job status constants
const (
	DeliveryJobStatusOpen      = "open"
	DeliveryJobStatusAccepted  = "accepted"
	DeliveryJobStatusDelivered = "delivered"
	DeliveryJobStatusCancelled = "cancelled"
)

// Wallet ledger entry type constants
const (
	WalletTxnCreditPending   = "credit_pending"
	WalletTxnCreditAvailable = "credit_available"
	WalletTxnDebitWithdrawal = "debit_withdrawal"
	WalletTxnReversal        = "reversal"
)

// Payout status constants
const (
	PayoutStatusRequested = "requested"
	PayoutStatusPaid      = "paid"
	PayoutStatusRejected  = "rejected"
)

// KYC submission status constants
const (
	KycStatusPending  = "pending"
	KycStatusApproved = "approved"
	KycStatusRejected = "rejected"
)

// KYC profile type constants
const (
	KycProfileVendor = "vendor"
	KycProfileAgency = "agency"
)

// Dispute status constants
const (
	DisputeStatusOpen     = "open"
	DisputeStatusResolved = "resolved"
	DisputeStatusRejected = "rejected"
)

// Queue constants
const (
	QueueDefault           = "default"
	TaskOrderStatusNotify  = "order:status_notify"
	TaskOrderPaymentExpire = "order:payment_expire"
)

// Cache defaults
const (
	RedisPrefixDefault = "jm"
)

// Setting key constants
const (
	SettingKeyDeliveryPricing = "delivery_pricing"
	SettingKeyWalletConfig    = "wallet_config"
)

// Default platform currency
const (
	SiteCurrencyDefault = "ETB"
)
