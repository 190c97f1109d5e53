// Package clusters implements the four fixed clusters described in
// Section 4.7: Descriptor on endpoint 0, and OnOff, LevelControl, and
// TemperatureMeasurement on endpoint 1. It exposes a single dispatch
// table, cluster_id -> read_fn(endpoint, attribute), wired into the
// Interaction Model's AttributeReader.
package clusters

// Endpoint numbers. This bridge has exactly two: a root endpoint
// carrying the Descriptor cluster, and a sensor endpoint carrying the
// application clusters.
const (
	EndpointRoot   = 0
	EndpointSensor = 1
)

// Cluster IDs.
const (
	ClusterDescriptor             = 0x001D
	ClusterOnOff                  = 0x0006
	ClusterLevelControl           = 0x0008
	ClusterTemperatureMeasurement = 0x0402
)

// Device type IDs used in Descriptor.DeviceTypeList entries.
const (
	DeviceTypeRootNode          = 0x0016
	DeviceTypeTemperatureSensor = 0x0302
)

// Descriptor attribute IDs.
const (
	AttrDeviceTypeList = 0x0000
	AttrServerList     = 0x0001
	AttrClientList     = 0x0002
	AttrPartsList      = 0x0003
)

// OnOff attribute IDs.
const AttrOnOff = 0x0000

// LevelControl attribute IDs.
const (
	AttrCurrentLevel = 0x0000
	AttrMinLevel     = 0x0001
	AttrMaxLevel     = 0x0002
)

// TemperatureMeasurement attribute IDs.
const (
	AttrMeasuredValue    = 0x0000
	AttrMinMeasuredValue = 0x0001
	AttrMaxMeasuredValue = 0x0002
	AttrTolerance        = 0x0003
)
