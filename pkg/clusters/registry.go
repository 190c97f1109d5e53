package clusters

import (
	"flarebridge/matter-core/pkg/attrstore"
	"flarebridge/matter-core/pkg/im"
	"flarebridge/matter-core/pkg/im/message"
)

// Registry is the cluster dispatch table from Section 4.6: cluster id
// routes to a read function of (endpoint, attribute), returning a
// value plus a status. Read wraps that into an im.AttributeReader by
// encoding the resulting value as TLV.
type Registry struct {
	store *attrstore.Store
}

// NewRegistry returns a dispatch table backed by store for the mutable
// OnOff, CurrentLevel, and MeasuredValue attributes.
func NewRegistry(store *attrstore.Store) *Registry {
	return &Registry{store: store}
}

// Read implements im.AttributeReader. Unknown cluster ids fail
// unsupported-cluster; a known cluster with an unknown attribute fails
// unsupported-attribute (Section 4.6).
func (r *Registry) Read(endpoint message.EndpointID, cluster message.ClusterID, attribute message.AttributeID) ([]byte, message.Status) {
	var (
		value  any
		status message.Status
	)

	switch cluster {
	case ClusterDescriptor:
		value, status = readDescriptor(endpoint, attribute)
	case ClusterOnOff:
		value, status = readOnOff(r.store, endpoint, attribute)
	case ClusterLevelControl:
		value, status = readLevelControl(r.store, endpoint, attribute)
	case ClusterTemperatureMeasurement:
		value, status = readTemperature(r.store, endpoint, attribute)
	default:
		return nil, message.StatusUnsupportedCluster
	}

	if status != message.StatusSuccess {
		return nil, status
	}

	data, err := im.EncodeValue(value)
	if err != nil {
		return nil, message.StatusFailure
	}
	return data, message.StatusSuccess
}

var _ im.AttributeReader = (*Registry)(nil).Read
