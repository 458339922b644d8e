package shipit

// Platforms an order may originate from.
const (
	SellerShopify     = "shopify"
	SellerWooCommerce = "woocommerce"
	SellerPrestaShop  = "prestashop"
)

// Order destinations.
const (
	DestinyHome   = "Domicilio"
	DestinyBranch = "Sucursal"
)

var orderRequestFields = []Field{
	FieldOrderSeller,
	FieldReference,
	FieldFullName,
	FieldEmail,
	FieldItemsCount,
	FieldCellphone,
	FieldIsPayable,
	FieldPacking,
	FieldDestiny,
	FieldCourierForClient,
	FieldApproxSize,
	FieldAddressCommuneID,
	FieldAddressStreet,
	FieldAddressNumber,
	FieldAddressComplement,
	FieldInventoryActivity,
}

// OrderRequest is the legacy order shape. It differs from ShippingRequest by
// carrying the originating seller platform and having no default destination.
type OrderRequest struct {
	record
}

// NewOrderRequest builds an order from attribute name/value pairs.
func NewOrderRequest(attrs map[string]any) (*OrderRequest, error) {
	r := &OrderRequest{record: newRecord(orderRequestFields, map[Field]any{
		FieldOrderSeller:       nil,
		FieldReference:         nil,
		FieldFullName:          nil,
		FieldEmail:             nil,
		FieldItemsCount:        0,
		FieldCellphone:         nil,
		FieldIsPayable:         false,
		FieldPacking:           nil,
		FieldShippingType:      DeliveryNormal,
		FieldDestiny:           nil,
		FieldCourierForClient:  nil,
		FieldApproxSize:        nil,
		FieldAddressCommuneID:  nil,
		FieldAddressStreet:     nil,
		FieldAddressNumber:     nil,
		FieldAddressComplement: nil,
		FieldInventoryActivity: nil,
	})}
	if err := r.apply(attrs); err != nil {
		return nil, err
	}
	return r, nil
}

// ToVendorFormat returns the order payload. The seller is sent as
// mongo_order_seller.
func (r *OrderRequest) ToVendorFormat(env Environment) map[string]any {
	data := r.ToMap()
	data["mongo_order_seller"] = data[string(FieldOrderSeller)]
	delete(data, string(FieldOrderSeller))
	return translate(data, env)
}
