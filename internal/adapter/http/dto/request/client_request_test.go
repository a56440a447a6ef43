package request

import "testing"

func TestCreateClientRequest_ToInputTrims(t *testing.T) {
	r := CreateClientRequest{Name: " Jane Doe ", Phone: " 555-123-4567", Email: "jane@doe.com ", Address: " 1 Main St ", Notes: " gate code 12 "}
	in := r.ToInput()
	if in.Name != "Jane Doe" || in.Phone != "555-123-4567" || in.Email != "jane@doe.com" {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.Address != "1 Main St" || in.Notes != "gate code 12" {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestUpdateClientRequest_ToInputKeepsOmittedFields(t *testing.T) {
	addr := "2 Oak Ave"
	in := UpdateClientRequest{Address: &addr}.ToInput()
	if in.Address == nil || *in.Address != addr {
		t.Fatalf("expected address to be carried, got %+v", in)
	}
	if in.Name != nil || in.Phone != nil || in.Email != nil || in.Notes != nil {
		t.Fatalf("expected omitted fields to stay nil, got %+v", in)
	}
}
