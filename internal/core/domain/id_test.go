package domain

import (
	"encoding/json"
	"testing"
)

func TestID_DecodesNumbersAndStrings(t *testing.T) {
	var b Barangay
	if err := json.Unmarshal([]byte(`{"id":1,"brgy_name":"Poblacion","city":"Cebu"}`), &b); err != nil {
		t.Fatalf("numeric id: %v", err)
	}
	if b.ID != "1" {
		t.Fatalf("expected id 1, got %q", b.ID)
	}

	if err := json.Unmarshal([]byte(`{"id":"6513f","brgy_name":"Poblacion","city":"Cebu"}`), &b); err != nil {
		t.Fatalf("string id: %v", err)
	}
	if b.ID != "6513f" {
		t.Fatalf("expected id 6513f, got %q", b.ID)
	}

	if err := json.Unmarshal([]byte(`{"id":null}`), &b); err != nil {
		t.Fatalf("null id: %v", err)
	}
	if b.ID != "" {
		t.Fatalf("null must decode to empty, got %q", b.ID)
	}

	if err := json.Unmarshal([]byte(`{"id":true}`), &b); err == nil {
		t.Fatalf("non-scalar id must fail")
	}
}

func TestID_ReferencesDecodeAsNumbers(t *testing.T) {
	var a BarangayAdmin
	raw := `{"id":7,"brgy_admin_name":"Ana","barangay":3,"user":{"id":12,"name":"Ana","userType":"barangay_admin","status":"ACTIVE"}}`
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.ID != "7" || a.BarangayID != "3" {
		t.Fatalf("unexpected ids %q %q", a.ID, a.BarangayID)
	}
	if a.User == nil || a.User.ID != "12" {
		t.Fatalf("nested user id not decoded: %+v", a.User)
	}
}

func TestCoordinate_DecodesNumbersAndStrings(t *testing.T) {
	var s Sitio
	raw := `{"id":2,"sitio_name":"Riverside","lat":10.3157,"long":"123.8854"}`
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Lat != "10.3157" {
		t.Fatalf("numeric lat mangled: %q", s.Lat)
	}
	if s.Long != "123.8854" {
		t.Fatalf("string long mangled: %q", s.Long)
	}

	var an Announcement
	raw = `{"id":"a1","headline":"Flood","message":"m","start_time":"08:00","end_time":"12:00","lat":"10.2","long":123}`
	if err := json.Unmarshal([]byte(raw), &an); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if an.Lat != "10.2" || an.Long != "123" {
		t.Fatalf("unexpected coordinates %q %q", an.Lat, an.Long)
	}
}

func TestID_MarshalsAsString(t *testing.T) {
	b, err := json.Marshal(User{ID: "12", Name: "Ana"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var round User
	if err := json.Unmarshal(b, &round); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if round.ID != "12" {
		t.Fatalf("roundtrip mangled id: %q", round.ID)
	}
}
