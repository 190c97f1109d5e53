package clusters

import (
	"flarebridge/matter-core/pkg/attrstore"
	"flarebridge/matter-core/pkg/im/message"
)

// Bounds in centidegrees Celsius, per Section 4.7.
const (
	minMeasuredValue int16  = 0
	maxMeasuredValue int16  = 10000
	tolerance        uint16 = 100
)

// MeasuredValueKey identifies the TemperatureMeasurement MeasuredValue
// attribute in the shared attribute store.
func MeasuredValueKey() attrstore.Key {
	return attrstore.Key{Endpoint: EndpointSensor, Cluster: ClusterTemperatureMeasurement, Attribute: AttrMeasuredValue}
}

func readTemperature(store *attrstore.Store, endpoint message.EndpointID, attribute message.AttributeID) (any, message.Status) {
	if endpoint != EndpointSensor {
		return nil, message.StatusUnsupportedEndpoint
	}

	switch attribute {
	case AttrMeasuredValue:
		v, ok := store.Get(MeasuredValueKey())
		if !ok {
			return int16(0), message.StatusSuccess
		}
		return v, message.StatusSuccess
	case AttrMinMeasuredValue:
		return minMeasuredValue, message.StatusSuccess
	case AttrMaxMeasuredValue:
		return maxMeasuredValue, message.StatusSuccess
	case AttrTolerance:
		return tolerance, message.StatusSuccess
	default:
		return nil, message.StatusUnsupportedAttribute
	}
}
