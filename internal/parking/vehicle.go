package parking

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// VehicleClass identifies the category of vehicle a zone is reserved for.
// Values outside the reference set are valid identifiers that simply have no zone.
type VehicleClass int

const (
	Big VehicleClass = iota + 1
	Medium
	Small
)

func (c VehicleClass) String() string {
	switch c {
	case Big:
		return "big"
	case Medium:
		return "medium"
	case Small:
		return "small"
	default:
		return "class-" + strconv.Itoa(int(c))
	}
}

// ParseVehicleClass accepts a class name (big, medium, small) or its numeric identifier.
func ParseVehicleClass(s string) (VehicleClass, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "big", "large":
		return Big, nil
	case "medium":
		return Medium, nil
	case "small":
		return Small, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid vehicle class %q", s)
	}
	return VehicleClass(n), nil
}

func (c *VehicleClass) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = VehicleClass(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("vehicle class must be a string or an integer")
	}

	parsed, err := ParseVehicleClass(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c VehicleClass) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}
