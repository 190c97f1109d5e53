package clusters

import (
	"flarebridge/matter-core/pkg/attrstore"
	"flarebridge/matter-core/pkg/im/message"
)

// OnOffKey identifies the OnOff attribute in the shared attribute
// store. Sensor ingestion writes through this key; readOnOff serves
// it back out on read.
func OnOffKey() attrstore.Key {
	return attrstore.Key{Endpoint: EndpointSensor, Cluster: ClusterOnOff, Attribute: AttrOnOff}
}

func readOnOff(store *attrstore.Store, endpoint message.EndpointID, attribute message.AttributeID) (any, message.Status) {
	if endpoint != EndpointSensor {
		return nil, message.StatusUnsupportedEndpoint
	}
	if attribute != AttrOnOff {
		return nil, message.StatusUnsupportedAttribute
	}

	v, ok := store.Get(OnOffKey())
	if !ok {
		return false, message.StatusSuccess
	}
	return v, message.StatusSuccess
}
