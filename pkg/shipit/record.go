package shipit

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/go-playground/validator/v10"
)

// Field names a record attribute. The string value is the vendor key.
type Field string

const (
	FieldOrderSeller       Field = "order_seller"
	FieldReference         Field = "reference"
	FieldFullName          Field = "full_name"
	FieldEmail             Field = "email"
	FieldItemsCount        Field = "items_count"
	FieldCellphone         Field = "cellphone"
	FieldIsPayable         Field = "is_payable"
	FieldPacking           Field = "packing"
	FieldShippingType      Field = "shipping_type"
	FieldDestiny           Field = "destiny"
	FieldCourierForClient  Field = "courier_for_client"
	FieldApproxSize        Field = "approx_size"
	FieldAddressCommuneID  Field = "address_commune_id"
	FieldAddressStreet     Field = "address_street"
	FieldAddressNumber     Field = "address_number"
	FieldAddressComplement Field = "address_complement"
	FieldInventoryActivity Field = "inventory_activity"
)

var knownFields = map[Field]struct{}{
	FieldOrderSeller: {}, FieldReference: {}, FieldFullName: {}, FieldEmail: {},
	FieldItemsCount: {}, FieldCellphone: {}, FieldIsPayable: {}, FieldPacking: {},
	FieldShippingType: {}, FieldDestiny: {}, FieldCourierForClient: {}, FieldApproxSize: {},
	FieldAddressCommuneID: {}, FieldAddressStreet: {}, FieldAddressNumber: {},
	FieldAddressComplement: {}, FieldInventoryActivity: {},
}

// ParseField returns the Field named name.
func ParseField(name string) (Field, bool) {
	f := Field(name)
	_, ok := knownFields[f]
	return f, ok
}

// Approximate package sizes, as labelled by the vendor.
const (
	SizeSmall  = "Pequeño (10x10x10cm)"
	SizeMedium = "Mediano (30x30x30cm)"
	SizeLarge  = "Grande (50x50x50cm)"
	SizeXLarge = "Muy Grande (>60x60x60cm)"
)

// Packing types.
const (
	PackingNone       = "Sin empaque"
	PackingPaperboard = "Caja de Cartón"
	PackingPlastic    = "Film Plástico"
	PackingBubble     = "Caja + Burbuja"
	PackingKraft      = "Papel Kraft"
)

// Couriers the recipient may prefer. CourierNone lets the vendor choose.
const (
	CourierNone         = ""
	CourierChilexpress  = "Chilexpress"
	CourierStarken      = "Starken"
	CourierMuvsmart     = "Muvsmart"
	CourierChileparcels = "Chileparcels"
	CourierMotopartner  = "Motopartner"
)

// Delivery speeds. Only DeliveryNormal is accepted by the vendor today.
const (
	DeliveryNormal   = "Normal"
	DeliverySaturday = "Sábado"
	DeliverySunday   = "Domingo"
)

const maxReferenceLength = 15

var validate = validator.New()

// record is the attribute store shared by ShippingRequest and OrderRequest.
type record struct {
	allowed map[Field]struct{}
	data    map[Field]any
}

func newRecord(allowed []Field, defaults map[Field]any) record {
	r := record{
		allowed: make(map[Field]struct{}, len(allowed)),
		data:    make(map[Field]any, len(defaults)),
	}
	for _, f := range allowed {
		r.allowed[f] = struct{}{}
	}
	for f, v := range defaults {
		r.data[f] = v
	}
	return r
}

// apply sets every attribute in attrs, in key order, stopping at the first failure.
func (r *record) apply(attrs map[string]any) error {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := r.SetAttribute(name, attrs[name]); err != nil {
			return err
		}
	}
	return nil
}

// Set stores value under f, replacing any previous value.
func (r *record) Set(f Field, value any) error {
	if _, ok := r.allowed[f]; !ok {
		return unknownAttribute(string(f))
	}
	if f == FieldReference {
		if err := checkReference(value); err != nil {
			return err
		}
	}
	r.data[f] = value
	return nil
}

// SetAttribute is Set keyed by the vendor attribute name.
func (r *record) SetAttribute(name string, value any) error {
	f, ok := ParseField(name)
	if !ok {
		return unknownAttribute(name)
	}
	return r.Set(f, value)
}

// Get returns the value stored under f, or nil when f is not an attribute
// of this record or was never set.
func (r *record) Get(f Field) any {
	if _, ok := r.allowed[f]; !ok {
		return nil
	}
	return r.data[f]
}

// ToMap returns a copy of every attribute, defaults included.
func (r *record) ToMap() map[string]any {
	out := make(map[string]any, len(r.data))
	for f, v := range r.data {
		out[string(f)] = v
	}
	return out
}

func checkReference(value any) error {
	if value == nil {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		s = fmt.Sprint(value)
	}
	if err := validate.Var(s, fmt.Sprintf("lt=%d", maxReferenceLength)); err != nil {
		return invalidReference(s).WithCause(err)
	}
	return nil
}

// isEmpty reports whether v is absent or a zero-like value: nil, "", "0",
// false, numeric zero, or an empty slice or map.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0 || rv.String() == "0"
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return rv.IsZero()
	}
}
