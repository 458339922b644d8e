package shipit

// Shipping destinations.
const (
	DestinationHome        = "Domicilio"
	DestinationChilexpress = "Chilexpress"
	DestinationStarken     = "Starken-Turbus"
)

var shippingRequestFields = []Field{
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

// ShippingRequest describes one package to be picked up and delivered.
type ShippingRequest struct {
	record
}

// NewShippingRequest builds a request from attribute name/value pairs. Every
// pair goes through SetAttribute; the first failure is returned.
func NewShippingRequest(attrs map[string]any) (*ShippingRequest, error) {
	r := &ShippingRequest{record: newRecord(shippingRequestFields, map[Field]any{
		FieldReference:         nil,
		FieldFullName:          nil,
		FieldEmail:             nil,
		FieldItemsCount:        0,
		FieldCellphone:         nil,
		FieldIsPayable:         false,
		FieldPacking:           nil,
		FieldShippingType:      DeliveryNormal,
		FieldDestiny:           DestinationHome,
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

// ToVendorFormat returns the payload sent as a "package" to the vendor.
func (r *ShippingRequest) ToVendorFormat(env Environment) map[string]any {
	return translate(r.ToMap(), env)
}
