package clusters

import (
	"bytes"
	"testing"

	"flarebridge/matter-core/pkg/attrstore"
	"flarebridge/matter-core/pkg/im/message"
	"flarebridge/matter-core/pkg/tlv"
)

func decodeBool(t *testing.T, data []byte) bool {
	t.Helper()
	r := tlv.NewReader(bytes.NewReader(data))
	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	v, err := r.Bool()
	if err != nil {
		t.Fatalf("decode bool: %v", err)
	}
	return v
}

func decodeInt(t *testing.T, data []byte) int64 {
	t.Helper()
	r := tlv.NewReader(bytes.NewReader(data))
	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	v, err := r.Int()
	if err != nil {
		t.Fatalf("decode int: %v", err)
	}
	return v
}

func decodeUint(t *testing.T, data []byte) uint64 {
	t.Helper()
	r := tlv.NewReader(bytes.NewReader(data))
	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	v, err := r.Uint()
	if err != nil {
		t.Fatalf("decode uint: %v", err)
	}
	return v
}

// TestReadOnOff covers Scenario S1: store OnOff=true, read it back.
func TestReadOnOff(t *testing.T) {
	store := attrstore.New()
	reg := NewRegistry(store)
	store.Set(OnOffKey(), true)

	data, status := reg.Read(EndpointSensor, ClusterOnOff, AttrOnOff)
	if status != message.StatusSuccess {
		t.Fatalf("status = %v, want success", status)
	}
	if got := decodeBool(t, data); !got {
		t.Fatalf("OnOff = %v, want true", got)
	}
}

// TestReadTemperature covers Scenario S2: store MeasuredValue=2500,
// read it back as a centidegree i16.
func TestReadTemperature(t *testing.T) {
	store := attrstore.New()
	reg := NewRegistry(store)
	store.Set(MeasuredValueKey(), int16(2500))

	data, status := reg.Read(EndpointSensor, ClusterTemperatureMeasurement, AttrMeasuredValue)
	if status != message.StatusSuccess {
		t.Fatalf("status = %v, want success", status)
	}
	if got := decodeInt(t, data); got != 2500 {
		t.Fatalf("MeasuredValue = %d, want 2500", got)
	}
}

// TestUnknownCluster covers Scenario S3: an unrecognized cluster id
// fails unsupported-cluster.
func TestUnknownCluster(t *testing.T) {
	reg := NewRegistry(attrstore.New())
	_, status := reg.Read(EndpointSensor, 0x9999, 0x0000)
	if status != message.StatusUnsupportedCluster {
		t.Fatalf("status = %v, want UnsupportedCluster", status)
	}
}

func TestUnknownAttribute(t *testing.T) {
	reg := NewRegistry(attrstore.New())
	_, status := reg.Read(EndpointSensor, ClusterOnOff, 0x1234)
	if status != message.StatusUnsupportedAttribute {
		t.Fatalf("status = %v, want UnsupportedAttribute", status)
	}
}

func TestDescriptorRejectsWrongEndpoint(t *testing.T) {
	reg := NewRegistry(attrstore.New())
	_, status := reg.Read(EndpointSensor, ClusterDescriptor, AttrDeviceTypeList)
	if status != message.StatusUnsupportedEndpoint {
		t.Fatalf("status = %v, want UnsupportedEndpoint", status)
	}
}

func TestApplicationClustersRejectRootEndpoint(t *testing.T) {
	reg := NewRegistry(attrstore.New())
	for _, cluster := range []message.ClusterID{ClusterOnOff, ClusterLevelControl, ClusterTemperatureMeasurement} {
		if _, status := reg.Read(EndpointRoot, cluster, 0); status != message.StatusUnsupportedEndpoint {
			t.Fatalf("cluster %#x: status = %v, want UnsupportedEndpoint", cluster, status)
		}
	}
}

func TestDescriptorServerAndPartsLists(t *testing.T) {
	reg := NewRegistry(attrstore.New())

	if _, status := reg.Read(EndpointRoot, ClusterDescriptor, AttrServerList); status != message.StatusSuccess {
		t.Fatalf("ServerList status = %v", status)
	}
	if _, status := reg.Read(EndpointRoot, ClusterDescriptor, AttrPartsList); status != message.StatusSuccess {
		t.Fatalf("PartsList status = %v", status)
	}
	if _, status := reg.Read(EndpointRoot, ClusterDescriptor, AttrClientList); status != message.StatusSuccess {
		t.Fatalf("ClientList status = %v", status)
	}
}

func TestLevelControlBounds(t *testing.T) {
	reg := NewRegistry(attrstore.New())

	minData, status := reg.Read(EndpointSensor, ClusterLevelControl, AttrMinLevel)
	if status != message.StatusSuccess {
		t.Fatalf("MinLevel status = %v", status)
	}
	if v := decodeUint(t, minData); v != 0 {
		t.Fatalf("MinLevel = %d, want 0", v)
	}

	maxData, status := reg.Read(EndpointSensor, ClusterLevelControl, AttrMaxLevel)
	if status != message.StatusSuccess {
		t.Fatalf("MaxLevel status = %v", status)
	}
	if v := decodeUint(t, maxData); v != 100 {
		t.Fatalf("MaxLevel = %d, want 100", v)
	}
}

func TestCurrentLevelDefaultsToZero(t *testing.T) {
	reg := NewRegistry(attrstore.New())
	data, status := reg.Read(EndpointSensor, ClusterLevelControl, AttrCurrentLevel)
	if status != message.StatusSuccess {
		t.Fatalf("status = %v", status)
	}
	if v := decodeUint(t, data); v != 0 {
		t.Fatalf("CurrentLevel = %d, want 0", v)
	}
}
