package parking

import (
	"encoding/json"
	"testing"
)

func TestParseVehicleClass(t *testing.T) {
	tests := []struct {
		input    string
		expected VehicleClass
	}{
		{"big", Big},
		{"BIG", Big},
		{"large", Big},
		{"1", Big},
		{"medium", Medium},
		{"2", Medium},
		{" small ", Small},
		{"3", Small},
		{"99", VehicleClass(99)},
		{"-4", VehicleClass(-4)},
	}

	for _, tt := range tests {
		class, err := ParseVehicleClass(tt.input)
		if err != nil {
			t.Errorf("ParseVehicleClass(%q): unexpected error: %s", tt.input, err.Error())
			continue
		}
		if class != tt.expected {
			t.Errorf("ParseVehicleClass(%q): expected %v, got %v", tt.input, tt.expected, class)
		}
	}
}

func TestParseVehicleClassInvalid(t *testing.T) {
	for _, input := range []string{"", "truck", "1.5"} {
		if _, err := ParseVehicleClass(input); err == nil {
			t.Errorf("Expected error for %q", input)
		}
	}
}

func TestVehicleClassString(t *testing.T) {
	if Big.String() != "big" || Medium.String() != "medium" || Small.String() != "small" {
		t.Errorf("Unexpected names: %s %s %s", Big, Medium, Small)
	}
	if VehicleClass(99).String() != "class-99" {
		t.Errorf("Expected class-99, got %s", VehicleClass(99))
	}
}

func TestVehicleClassJSON(t *testing.T) {
	var req struct {
		Class VehicleClass `json:"vehicle_class"`
	}

	if err := json.Unmarshal([]byte(`{"vehicle_class": 2}`), &req); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if req.Class != Medium {
		t.Errorf("Expected medium, got %v", req.Class)
	}

	if err := json.Unmarshal([]byte(`{"vehicle_class": "small"}`), &req); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if req.Class != Small {
		t.Errorf("Expected small, got %v", req.Class)
	}

	if err := json.Unmarshal([]byte(`{"vehicle_class": true}`), &req); err == nil {
		t.Error("Expected error for boolean vehicle class")
	}

	data, err := json.Marshal(Big)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if string(data) != `"big"` {
		t.Errorf("Expected \"big\", got %s", data)
	}
}
