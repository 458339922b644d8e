package shipit

import "fmt"

// TestReferencePrefix replaces the start of every reference sent from the
// development environment.
const TestReferencePrefix = "TEST-"

var addressKeys = []struct {
	flat   Field
	nested string
}{
	{FieldAddressCommuneID, "commune_id"},
	{FieldAddressStreet, "street"},
	{FieldAddressNumber, "number"},
	{FieldAddressComplement, "complement"},
}

// translate reshapes a record map into the vendor payload in place and
// returns it.
func translate(data map[string]any, env Environment) map[string]any {
	if env.normalize() == EnvDevelopment {
		data[string(FieldReference)] = testReference(data[string(FieldReference)])
	}

	address := make(map[string]any, len(addressKeys))
	for _, k := range addressKeys {
		address[k.nested] = data[string(k.flat)]
		delete(data, string(k.flat))
	}
	data["address_attributes"] = address

	if isEmpty(data[string(FieldInventoryActivity)]) {
		delete(data, string(FieldInventoryActivity))
	}
	return data
}

// testReference overwrites the first len(TestReferencePrefix) characters of
// ref with the prefix, keeping the total length. A reference shorter than the
// prefix becomes the bare prefix; a missing reference stays missing.
func testReference(ref any) any {
	if ref == nil {
		return nil
	}
	s, ok := ref.(string)
	if !ok {
		s = fmt.Sprint(ref)
	}
	runes := []rune(s)
	prefixLen := len([]rune(TestReferencePrefix))
	if len(runes) <= prefixLen {
		return TestReferencePrefix
	}
	return TestReferencePrefix + string(runes[prefixLen:])
}
