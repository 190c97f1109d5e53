package clusters

import (
	"flarebridge/matter-core/pkg/im"
	"flarebridge/matter-core/pkg/im/message"
)

// rootDeviceTypes and SensorDeviceTypes describe the two endpoints'
// device types. Only rootDeviceTypes is actually reachable through the
// Descriptor cluster (Descriptor lives on endpoint 0 only); the sensor
// entry is exported so endpoint 1 can be described without going through
// an attribute read.
var (
	rootDeviceTypes   = []im.DeviceType{{DeviceType: DeviceTypeRootNode, Revision: 1}}
	SensorDeviceTypes = []im.DeviceType{{DeviceType: DeviceTypeTemperatureSensor, Revision: 1}}

	rootServerList   = []uint32{ClusterDescriptor}
	SensorServerList = []uint32{ClusterOnOff, ClusterLevelControl, ClusterTemperatureMeasurement}

	emptyClusterList = []uint32{}
	sensorPartsList  = []uint32{EndpointSensor}
)

// readDescriptor answers the Descriptor cluster. It only exists on
// endpoint 0; reads against any other endpoint fail unsupported
// endpoint (Section 4.7).
func readDescriptor(endpoint message.EndpointID, attribute message.AttributeID) (any, message.Status) {
	if endpoint != EndpointRoot {
		return nil, message.StatusUnsupportedEndpoint
	}

	switch attribute {
	case AttrDeviceTypeList:
		return rootDeviceTypes, message.StatusSuccess
	case AttrServerList:
		return rootServerList, message.StatusSuccess
	case AttrClientList:
		return emptyClusterList, message.StatusSuccess
	case AttrPartsList:
		return sensorPartsList, message.StatusSuccess
	default:
		return nil, message.StatusUnsupportedAttribute
	}
}
